package model

import "fmt"

// axis 0 is the row axis, axis 1 the column axis; sign 0 decreasing, 1 increasing
var directionTable = [2][2]Direction{
	{North, South},
	{West, East},
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) Valid() bool {
	return d >= East && d <= North
}

func (d Direction) Name() string {
	switch d {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case North:
		return "North"
	default:
		return fmt.Sprintf("N/A(%d)", int(d))
	}
}

func (d Direction) String() string {
	return d.Name()
}

// Delta returns the row and column offset of one step in d.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	case North:
		return -1, 0
	}
	return 0, 0
}

// Step returns the room next to r in direction d. The result may lie outside the grid.
func (r RoomId) Step(d Direction) RoomId {
	dr, dc := d.Delta()
	return RoomId{Row: r.Row + dr, Col: r.Col + dc}
}

// Adjacent reports whether a and b differ by one unit in exactly one axis.
func Adjacent(a, b RoomId) bool {
	dr, dc := b.Row-a.Row, b.Col-a.Col
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// DirectionTo returns the wall of from that faces to.
func DirectionTo(from, to RoomId) (Direction, error) {
	if !Adjacent(from, to) {
		return 0, fmt.Errorf("rooms %v and %v are not adjacent", from, to)
	}
	axis, delta := 0, to.Row-from.Row
	if delta == 0 {
		axis, delta = 1, to.Col-from.Col
	}
	sign := 0
	if delta > 0 {
		sign = 1
	}
	return directionTable[axis][sign], nil
}

// NewEdge normalises the pair so that A is the smaller room.
func NewEdge(a, b RoomId) (Edge, error) {
	if a == b {
		return Edge{}, fmt.Errorf("self edge at %v", a)
	}
	if !Adjacent(a, b) {
		return Edge{}, fmt.Errorf("rooms %v and %v are not adjacent", a, b)
	}
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}, nil
}

// Has reports whether r is one of the endpoints.
func (e Edge) Has(r RoomId) bool {
	return e.A == r || e.B == r
}

// Other returns the endpoint that is not r.
func (e Edge) Other(r RoomId) RoomId {
	if e.A == r {
		return e.B
	}
	return e.A
}

// ClosedWalls folds a doorway list into the closed walls of every room of a rows x cols grid,
// indexed row major. Doorways outside the grid are ignored.
func ClosedWalls(rows, cols int, doorways []DoorwayInstruction) [][4]bool {
	walls := make([][4]bool, rows*cols)
	for i := range walls {
		walls[i] = [4]bool{true, true, true, true}
	}
	for _, d := range doorways {
		r := d.Room
		if r.Row < 0 || r.Row >= rows || r.Col < 0 || r.Col >= cols || !d.Direction.Valid() {
			continue
		}
		walls[r.Row*cols+r.Col][d.Direction] = false
	}
	return walls
}
