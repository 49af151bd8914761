package server

import (
	"math/rand"

	"github.com/zucenko/roomgrid/config"
	"github.com/zucenko/roomgrid/layout"
	"github.com/zucenko/roomgrid/model"
	"github.com/zyedidia/generic/mapset"
)

// NewSession generates every layout for seed and places doorway triggers on them.
func NewSession(settings config.Settings, seed int64) (*Session, error) {
	cfg := settings.Layout
	cfg.Seed = seed
	layouts, err := layout.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{
		State:           SS_NEW,
		Seed:            seed,
		Layouts:         layouts,
		Triggers:        placeTriggers(layouts, settings.TriggerChance, seed),
		Errors:          make(chan error, 1),
		Events:          make(chan model.ClientMessage, 10),
		ConnectRequests: make(chan ConnectRequest),
		Done:            make(chan struct{}),
	}, nil
}

// placeTriggers gives each primary doorway a trigger with probability chance.
// Crossing a triggered doorway moves the session to the next layout.
func placeTriggers(layouts *layout.Set, chance float64, seed int64) []mapset.Set[model.Edge] {
	rng := rand.New(rand.NewSource(seed))
	triggers := make([]mapset.Set[model.Edge], layouts.Len())
	for i := range triggers {
		triggers[i] = mapset.New[model.Edge]()
		for _, d := range layouts.Layout(i).Doorways() {
			if !d.Primary {
				continue
			}
			if rng.Float64() < chance {
				triggers[i].Put(model.Edge{A: d.Room, B: d.Room.Step(d.Direction)})
			}
		}
	}
	return triggers
}

func (s *Session) Snapshot() model.Snapshot {
	l := s.Layouts.Current()
	var triggers []model.DoorwayInstruction
	for _, d := range l.Doorways() {
		if d.Primary && s.Triggers[s.Layouts.Index()].Has(model.Edge{A: d.Room, B: d.Room.Step(d.Direction)}) {
			triggers = append(triggers, d)
		}
	}
	return model.Snapshot{
		Index:    s.Layouts.Index(),
		Count:    s.Layouts.Len(),
		Rows:     l.Topology().Rows(),
		Cols:     l.Topology().Columns(),
		Spacing:  l.Spacing(),
		Doorways: l.Doorways(),
		Triggers: triggers,
		Visitor:  s.Visitor,
	}
}
