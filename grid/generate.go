package grid

import (
	"fmt"
	"math"

	"github.com/zucenko/roomgrid/model"
	"github.com/zyedidia/generic/mapset"
)

// Rand is the random source the generator draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Shuffle is an in-place Fisher-Yates permutation.
func Shuffle[T any](list []T, rng Rand) {
	for i := len(list) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		list[i], list[j] = list[j], list[i]
	}
}

// MaxExtra is round(rows*cols*density), halves rounded away from zero. It is capped at twice
// the room count, which is more than the grid has edges.
func MaxExtra(t *Topology, density float64) int {
	limit := 2 * t.Size()
	extra := math.Round(float64(t.Size()) * density)
	if !(extra < float64(limit)) {
		return limit
	}
	return int(extra)
}

// CheckDensity rejects negative and non finite density factors.
func CheckDensity(density float64) error {
	if density < 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		return fmt.Errorf("density factor %v: %w", density, ErrConfiguration)
	}
	return nil
}

// Generate connects every room of t and then adds up to MaxExtra loops.
// The spanning tree is rebalanced so no room ends with more than MaxDegree doorways.
func Generate(t *Topology, density float64, rng Rand) (*ConnectionSet, error) {
	if err := CheckDensity(density); err != nil {
		return nil, err
	}
	c, err := SpanningTree(t, rng)
	if err != nil {
		return nil, err
	}
	if err := rebalance(c, rng); err != nil {
		return nil, err
	}
	if _, err := AddExtraEdges(c, density, rng); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

type frame struct {
	room   model.RoomId
	next   []model.RoomId
	cursor int
}

// SpanningTree walks the grid depth first from (0,0), visiting neighbours in shuffled order,
// and keeps the edge to every room it enters for the first time.
func SpanningTree(t *Topology, rng Rand) (*ConnectionSet, error) {
	c := NewConnectionSet(t)
	visited := mapset.New[model.RoomId]()

	enter := func(room model.RoomId) *frame {
		visited.Put(room)
		next := t.Neighbors(room)
		Shuffle(next, rng)
		return &frame{room: room, next: next}
	}

	stack := []*frame{enter(model.RoomId{})}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.cursor == len(top.next) {
			stack = stack[:len(stack)-1]
			continue
		}
		n := top.next[top.cursor]
		top.cursor++
		if visited.Has(n) {
			continue
		}
		e, err := model.NewEdge(top.room, n)
		if err != nil {
			return nil, fmt.Errorf("spanning pass: %v: %w", err, ErrInvariantViolation)
		}
		if err := c.Add(e); err != nil {
			return nil, fmt.Errorf("spanning pass: %w", err)
		}
		stack = append(stack, enter(n))
	}

	if visited.Size() != t.Size() {
		return nil, fmt.Errorf("spanning pass visited %d of %d rooms: %w", visited.Size(), t.Size(), ErrInvariantViolation)
	}
	if c.Len() != t.Size()-1 {
		return nil, fmt.Errorf("spanning pass kept %d edges for %d rooms: %w", c.Len(), t.Size(), ErrInvariantViolation)
	}
	return c, nil
}

// rebalance fixes rooms the depth first walk left with four doorways. Each such room joins
// four separate branches of the tree; one of its edges is traded for another grid edge that
// joins the same two halves.
func rebalance(c *ConnectionSet, rng Rand) error {
	for _, room := range c.topology.Rooms() {
		if c.Degree(room) <= MaxDegree {
			continue
		}
		incident := c.Incident(room)
		Shuffle(incident, rng)
		swapped := false
		for _, e := range incident {
			if swapped = swapEdge(c, room, e); swapped {
				break
			}
		}
		if !swapped {
			return fmt.Errorf("room %v keeps %d doorways: %w", room, c.Degree(room), ErrInvariantViolation)
		}
	}
	return nil
}

// swapEdge replaces e with an edge between the branch behind e and the rest of the tree.
func swapEdge(c *ConnectionSet, room model.RoomId, e model.Edge) bool {
	branch := c.Reachable(e.Other(room), &e)
	degree := func(r model.RoomId) int {
		d := c.Degree(r)
		if e.Has(r) {
			d--
		}
		return d
	}
	for _, a := range c.topology.Rooms() {
		if !branch.Has(a) || degree(a) >= MaxDegree {
			continue
		}
		for _, b := range c.topology.Neighbors(a) {
			if b == room || branch.Has(b) || degree(b) >= MaxDegree {
				continue
			}
			candidate, _ := model.NewEdge(a, b)
			c.remove(e)
			if err := c.Add(candidate); err != nil {
				c.Add(e)
				return false
			}
			return true
		}
	}
	return false
}

// AddExtraEdges walks every grid edge in shuffled order and opens the ones whose rooms both
// have fewer than MaxDegree doorways, stopping after MaxExtra. It returns how many it added.
func AddExtraEdges(c *ConnectionSet, density float64, rng Rand) (int, error) {
	if err := CheckDensity(density); err != nil {
		return 0, err
	}
	candidates := c.topology.AllEdges()
	Shuffle(candidates, rng)

	maxExtra := MaxExtra(c.topology, density)
	added := 0
	for _, e := range candidates {
		if added >= maxExtra {
			break
		}
		if c.Has(e) {
			continue
		}
		if c.Degree(e.A) < MaxDegree && c.Degree(e.B) < MaxDegree {
			if err := c.Add(e); err != nil {
				return added, fmt.Errorf("extra pass: %w", err)
			}
			added++
		}
	}
	return added, nil
}
