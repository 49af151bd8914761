package grid

import (
	"fmt"

	"github.com/zucenko/roomgrid/model"
	"github.com/zyedidia/generic/mapset"
)

// MaxDegree is the most doorways a room may have. One wall always stays closed.
const MaxDegree = 3

// ConnectionSet holds the doorways of one grid. Edges iterate in insertion order.
type ConnectionSet struct {
	topology *Topology
	edges    []model.Edge
	index    mapset.Set[model.Edge]
	degrees  []int
}

func NewConnectionSet(t *Topology) *ConnectionSet {
	return &ConnectionSet{
		topology: t,
		edges:    make([]model.Edge, 0, t.Size()),
		index:    mapset.New[model.Edge](),
		degrees:  make([]int, t.Size()),
	}
}

func (c *ConnectionSet) Topology() *Topology {
	return c.topology
}

// Add inserts a new edge. Duplicates and edges leaving the grid are invariant violations.
func (c *ConnectionSet) Add(e model.Edge) error {
	e, err := model.NewEdge(e.A, e.B)
	if err != nil {
		return fmt.Errorf("add edge: %v: %w", err, ErrInvariantViolation)
	}
	if !c.topology.Contains(e.A) || !c.topology.Contains(e.B) {
		return fmt.Errorf("edge %v outside %dx%d grid: %w", e, c.topology.rows, c.topology.cols, ErrInvariantViolation)
	}
	if c.index.Has(e) {
		return fmt.Errorf("duplicate edge %v: %w", e, ErrInvariantViolation)
	}
	c.index.Put(e)
	c.edges = append(c.edges, e)
	c.degrees[c.topology.index(e.A)]++
	c.degrees[c.topology.index(e.B)]++
	return nil
}

func (c *ConnectionSet) remove(e model.Edge) {
	if !c.index.Has(e) {
		return
	}
	c.index.Remove(e)
	for i, x := range c.edges {
		if x == e {
			c.edges = append(c.edges[:i], c.edges[i+1:]...)
			break
		}
	}
	c.degrees[c.topology.index(e.A)]--
	c.degrees[c.topology.index(e.B)]--
}

// Has accepts the endpoints in either order.
func (c *ConnectionSet) Has(e model.Edge) bool {
	if e.B.Less(e.A) {
		e.A, e.B = e.B, e.A
	}
	return c.index.Has(e)
}

func (c *ConnectionSet) Len() int {
	return len(c.edges)
}

func (c *ConnectionSet) Edges() []model.Edge {
	edges := make([]model.Edge, len(c.edges))
	copy(edges, c.edges)
	return edges
}

func (c *ConnectionSet) Degree(r model.RoomId) int {
	if !c.topology.Contains(r) {
		return 0
	}
	return c.degrees[c.topology.index(r)]
}

// Incident scans the set for edges touching r.
func (c *ConnectionSet) Incident(r model.RoomId) []model.Edge {
	var incident []model.Edge
	for _, e := range c.edges {
		if e.Has(r) {
			incident = append(incident, e)
		}
	}
	return incident
}

// Reachable returns the rooms reachable from start, never crossing skip.
func (c *ConnectionSet) Reachable(start model.RoomId, skip *model.Edge) mapset.Set[model.RoomId] {
	visited := mapset.New[model.RoomId]()
	if !c.topology.Contains(start) {
		return visited
	}
	visited.Put(start)
	queue := []model.RoomId{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range c.topology.Neighbors(current) {
			e := model.Edge{A: current, B: n}
			if n.Less(current) {
				e = model.Edge{A: n, B: current}
			}
			if skip != nil && e == *skip {
				continue
			}
			if visited.Has(n) || !c.index.Has(e) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return visited
}

// Connected reports whether every room can reach every other room.
func (c *ConnectionSet) Connected() bool {
	return c.Reachable(model.RoomId{}, nil).Size() == c.topology.Size()
}

// Validate checks connectivity and the degree cap.
func (c *ConnectionSet) Validate() error {
	if !c.Connected() {
		return fmt.Errorf("layout is not connected: %w", ErrInvariantViolation)
	}
	for _, r := range c.topology.Rooms() {
		if d := c.Degree(r); d > MaxDegree {
			return fmt.Errorf("room %v has %d doorways: %w", r, d, ErrInvariantViolation)
		}
	}
	return nil
}
