package model

import "fmt"

// RoomId identifies one cell of the grid.
type RoomId struct {
	Row, Col int
}

func (r RoomId) String() string {
	return fmt.Sprintf("(%d,%d)", r.Row, r.Col)
}

// Less orders rooms row-major.
func (r RoomId) Less(o RoomId) bool {
	if r.Row != o.Row {
		return r.Row < o.Row
	}
	return r.Col < o.Col
}

// Direction of a wall. Values match the path indexes of a cell: (d+2)%4 is the opposite wall.
type Direction int

const (
	East Direction = iota
	South
	West
	North
)

var Directions = [4]Direction{East, South, West, North}

// Edge is an undirected doorway between two adjacent rooms. A is always the smaller room.
type Edge struct {
	A, B RoomId
}

func (e Edge) String() string {
	return fmt.Sprintf("%v-%v", e.A, e.B)
}

// DoorwayInstruction tells the actuator to open the wall facing Direction of Room.
type DoorwayInstruction struct {
	Room      RoomId
	Direction Direction
	Primary   bool
}

type Position struct {
	X, Y float64
}
