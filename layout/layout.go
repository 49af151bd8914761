package layout

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roomgrid/grid"
	"github.com/zucenko/roomgrid/model"
)

// Config describes a set of layouts. Spacing and Origin are only used by Position.
type Config struct {
	Count         int
	Rows, Columns int
	Spacing       float64
	Origin        model.Position
	DensityFactor float64
	Seed          int64
}

func (c Config) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("layout count %d: %w", c.Count, grid.ErrConfiguration)
	}
	if c.Rows < 1 || c.Columns < 1 {
		return fmt.Errorf("grid %dx%d: %w", c.Rows, c.Columns, grid.ErrConfiguration)
	}
	return grid.CheckDensity(c.DensityFactor)
}

// Layout is one generated grid with its doorways.
type Layout struct {
	Seed        int64
	topology    *grid.Topology
	connections *grid.ConnectionSet
	doorways    []model.DoorwayInstruction
	spacing     float64
	origin      model.Position
	active      bool
}

// Generate builds a single layout from its own random stream.
func Generate(t *grid.Topology, density float64, seed int64, spacing float64, origin model.Position) (*Layout, error) {
	connections, err := grid.Generate(t, density, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	return &Layout{
		Seed:        seed,
		topology:    t,
		connections: connections,
		doorways:    grid.MapWalls(connections),
		spacing:     spacing,
		origin:      origin,
	}, nil
}

func (l *Layout) Topology() *grid.Topology {
	return l.topology
}

func (l *Layout) Connections() *grid.ConnectionSet {
	return l.connections
}

// Doorways returns a copy; the layout itself stays read only.
func (l *Layout) Doorways() []model.DoorwayInstruction {
	doorways := make([]model.DoorwayInstruction, len(l.doorways))
	copy(doorways, l.doorways)
	return doorways
}

func (l *Layout) Spacing() float64 {
	return l.spacing
}

func (l *Layout) Active() bool {
	return l.active
}

// Position places a room at origin + (col, row) * spacing.
func (l *Layout) Position(r model.RoomId) model.Position {
	return model.Position{
		X: l.origin.X + float64(r.Col)*l.spacing,
		Y: l.origin.Y + float64(r.Row)*l.spacing,
	}
}

// Open reports whether the wall of r facing d has a doorway.
func (l *Layout) Open(r model.RoomId, d model.Direction) bool {
	n := r.Step(d)
	if !l.topology.Contains(r) || !l.topology.Contains(n) {
		return false
	}
	return l.connections.Has(model.Edge{A: r, B: n})
}

func (l *Layout) String() string {
	return grid.Render(l.connections)
}

// Set holds every generated layout. Exactly one is active at a time.
type Set struct {
	layouts []*Layout
	current int
}

// New generates all layouts up front. A root stream seeded with cfg.Seed draws one sub-seed per
// layout in index order, so a seed reproduces the whole set.
func New(cfg Config) (*Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := grid.NewTopology(cfg.Rows, cfg.Columns)
	if err != nil {
		return nil, err
	}
	root := rand.New(rand.NewSource(cfg.Seed))
	layouts := make([]*Layout, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		seed := root.Int63()
		log.Debugf("layout %d seed %d", i, seed)
		l, err := Generate(t, cfg.DensityFactor, seed, cfg.Spacing, cfg.Origin)
		if err != nil {
			return nil, fmt.Errorf("layout %d: %w", i, err)
		}
		layouts = append(layouts, l)
	}
	layouts[0].active = true
	return &Set{layouts: layouts}, nil
}

// Advance hides the current layout and shows the next one, wrapping around.
func (s *Set) Advance() *Layout {
	s.layouts[s.current].active = false
	s.current = (s.current + 1) % len(s.layouts)
	s.layouts[s.current].active = true
	return s.layouts[s.current]
}

func (s *Set) Current() *Layout {
	return s.layouts[s.current]
}

func (s *Set) Index() int {
	return s.current
}

func (s *Set) Len() int {
	return len(s.layouts)
}

func (s *Set) Layout(i int) *Layout {
	return s.layouts[i]
}
