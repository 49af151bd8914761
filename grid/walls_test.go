package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/roomgrid/model"
)

func TestDoorways(t *testing.T) {
	primary, secondary := Doorways(model.Edge{A: model.RoomId{Row: 1, Col: 1}, B: model.RoomId{Row: 1, Col: 2}})
	assert.Equal(t, model.DoorwayInstruction{Room: model.RoomId{Row: 1, Col: 1}, Direction: model.East, Primary: true}, primary)
	assert.Equal(t, model.DoorwayInstruction{Room: model.RoomId{Row: 1, Col: 2}, Direction: model.West}, secondary)

	primary, secondary = Doorways(model.Edge{A: model.RoomId{Row: 0, Col: 2}, B: model.RoomId{Row: 1, Col: 2}})
	assert.Equal(t, model.South, primary.Direction)
	assert.Equal(t, model.North, secondary.Direction)
	assert.True(t, primary.Primary)
	assert.False(t, secondary.Primary)
}

func TestDoorwaysMatchDirectionTo(t *testing.T) {
	for _, e := range topology(t, 3, 4).AllEdges() {
		primary, secondary := Doorways(e)
		d, err := model.DirectionTo(e.A, e.B)
		require.NoError(t, err)
		assert.Equal(t, d, primary.Direction)
		assert.Contains(t, []model.Direction{model.East, model.South}, primary.Direction)
		assert.Equal(t, e.A, secondary.Room.Step(secondary.Direction))
	}
}

func TestMapWallsEmitsOpposingPairs(t *testing.T) {
	top, err := NewTopology(7, 5)
	require.NoError(t, err)
	c, err := Generate(top, 0.4, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	instructions := MapWalls(c)
	require.Len(t, instructions, 2*c.Len())
	for i, e := range c.Edges() {
		primary, secondary := instructions[2*i], instructions[2*i+1]
		assert.Equal(t, e.A, primary.Room)
		assert.Equal(t, e.B, secondary.Room)
		assert.Equal(t, primary.Direction.Opposite(), secondary.Direction)
		assert.Equal(t, e.B, primary.Room.Step(primary.Direction))
		assert.Equal(t, e.A, secondary.Room.Step(secondary.Direction))
	}

	assert.Equal(t, instructions, MapWalls(c))
}

func TestWallsLeaveOneClosed(t *testing.T) {
	top, err := NewTopology(6, 6)
	require.NoError(t, err)
	c, err := Generate(top, 1, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	for i, walls := range model.ClosedWalls(top.Rows(), top.Columns(), MapWalls(c)) {
		closed := 0
		for _, w := range walls {
			if w {
				closed++
			}
		}
		assert.GreaterOrEqual(t, closed, 1, "room %d", i)
		assert.Equal(t, 4-closed, c.Degree(top.Rooms()[i]))
	}
}
