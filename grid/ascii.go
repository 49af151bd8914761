package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zucenko/roomgrid/model"
)

// Text format: room lines alternate with wall lines.
//
//	o o|o.
//	-+ +-+
//	o|o o.
//
// In a room line every even column is a room and the following character is its east wall:
// '|' closed, ' ' open, '.' end of line. In a wall line every even column is the south wall
// of the room above: '-' closed, ' ' open, followed by a '+' joint.
const (
	roomChar       = 'o'
	wallVertical   = '|'
	wallHorizontal = '-'
	openChar       = ' '
	endLineChar    = '.'
	wallJointChar  = '+'
)

func Render(c *ConnectionSet) string {
	t := c.topology
	var b strings.Builder
	for r := 0; r < t.rows; r++ {
		for col := 0; col < t.cols; col++ {
			room := model.RoomId{Row: r, Col: col}
			b.WriteRune(roomChar)
			switch {
			case col == t.cols-1:
				b.WriteRune(endLineChar)
			case c.Has(model.Edge{A: room, B: room.Step(model.East)}):
				b.WriteRune(openChar)
			default:
				b.WriteRune(wallVertical)
			}
		}
		b.WriteRune('\n')
		if r == t.rows-1 {
			break
		}
		for col := 0; col < t.cols; col++ {
			room := model.RoomId{Row: r, Col: col}
			if c.Has(model.Edge{A: room, B: room.Step(model.South)}) {
				b.WriteRune(openChar)
			} else {
				b.WriteRune(wallHorizontal)
			}
			b.WriteRune(wallJointChar)
		}
		b.WriteRune('\n')
	}
	return b.String()
}

// Read parses text written by Render.
func Read(reader io.Reader) (*ConnectionSet, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)

	var east, south []model.Edge
	lines := 0
	matrixRow := 0
	cols := -1

	for scanner.Scan() {
		s := scanner.Text()
		if s == "" {
			continue
		}
		if len(s)%2 != 0 {
			return nil, fmt.Errorf("line %d has odd length %d: %w", lines+1, len(s), ErrFormat)
		}
		if cols == -1 {
			cols = len(s) / 2
		} else if len(s)/2 != cols {
			return nil, fmt.Errorf("line %d has %d rooms, want %d: %w", lines+1, len(s)/2, cols, ErrFormat)
		}
		if lines%2 == 0 {
			// room line
			for i, char := range s {
				matrixCol := i / 2
				if i%2 == 0 {
					if char != roomChar {
						return nil, fmt.Errorf("line %d col %d: unexpected %q: %w", lines+1, i+1, char, ErrFormat)
					}
					continue
				}
				room := model.RoomId{Row: matrixRow, Col: matrixCol}
				switch {
				case matrixCol == cols-1 && char == endLineChar:
				case matrixCol < cols-1 && char == openChar:
					east = append(east, model.Edge{A: room, B: room.Step(model.East)})
				case matrixCol < cols-1 && char == wallVertical:
				default:
					return nil, fmt.Errorf("line %d col %d: unexpected %q: %w", lines+1, i+1, char, ErrFormat)
				}
			}
		} else {
			// south walls of the row above
			for i, char := range s {
				if i%2 != 0 {
					if char != wallJointChar {
						return nil, fmt.Errorf("line %d col %d: unexpected %q: %w", lines+1, i+1, char, ErrFormat)
					}
					continue
				}
				room := model.RoomId{Row: matrixRow, Col: i / 2}
				switch char {
				case openChar:
					south = append(south, model.Edge{A: room, B: room.Step(model.South)})
				case wallHorizontal:
				default:
					return nil, fmt.Errorf("line %d col %d: unexpected %q: %w", lines+1, i+1, char, ErrFormat)
				}
			}
			matrixRow++
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if lines == 0 || lines%2 == 0 {
		return nil, fmt.Errorf("%d lines, want an odd number: %w", lines, ErrFormat)
	}

	t, err := NewTopology(matrixRow+1, cols)
	if err != nil {
		return nil, err
	}
	c := NewConnectionSet(t)
	for _, e := range append(east, south...) {
		if err := c.Add(e); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrFormat)
		}
	}
	return c, nil
}
