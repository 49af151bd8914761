package grid

import (
	"fmt"

	"github.com/zucenko/roomgrid/model"
)

// Topology is a rows x columns grid of rooms. It never changes after construction.
type Topology struct {
	rows, cols int
}

func NewTopology(rows, cols int) (*Topology, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid %dx%d: rows and columns must be positive: %w", rows, cols, ErrConfiguration)
	}
	return &Topology{rows: rows, cols: cols}, nil
}

func (t *Topology) Rows() int    { return t.rows }
func (t *Topology) Columns() int { return t.cols }
func (t *Topology) Size() int    { return t.rows * t.cols }

func (t *Topology) Contains(r model.RoomId) bool {
	return r.Row >= 0 && r.Row < t.rows && r.Col >= 0 && r.Col < t.cols
}

func (t *Topology) index(r model.RoomId) int {
	return r.Row*t.cols + r.Col
}

// Rooms lists every room row by row.
func (t *Topology) Rooms() []model.RoomId {
	rooms := make([]model.RoomId, 0, t.Size())
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			rooms = append(rooms, model.RoomId{Row: r, Col: c})
		}
	}
	return rooms
}

var neighborOrder = [4]model.Direction{model.North, model.South, model.East, model.West}

// Neighbors returns the rooms sharing a wall with r, in North, South, East, West order.
func (t *Topology) Neighbors(r model.RoomId) []model.RoomId {
	neighbors := make([]model.RoomId, 0, 4)
	for _, d := range neighborOrder {
		n := r.Step(d)
		if t.Contains(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// AllEdges lists every pair of adjacent rooms once: for each room row by row its East edge, then its South edge.
func (t *Topology) AllEdges() []model.Edge {
	edges := make([]model.Edge, 0, t.rows*(t.cols-1)+t.cols*(t.rows-1))
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			room := model.RoomId{Row: r, Col: c}
			if c < t.cols-1 {
				edges = append(edges, model.Edge{A: room, B: room.Step(model.East)})
			}
			if r < t.rows-1 {
				edges = append(edges, model.Edge{A: room, B: room.Step(model.South)})
			}
		}
	}
	return edges
}
