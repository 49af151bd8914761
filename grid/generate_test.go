package grid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/roomgrid/model"
)

func topology(t *testing.T, rows, cols int) *Topology {
	t.Helper()
	top, err := NewTopology(rows, cols)
	require.NoError(t, err)
	return top
}

func TestSpanningTreeConnectsEveryRoom(t *testing.T) {
	for rows := 1; rows <= 7; rows++ {
		for cols := 1; cols <= 7; cols++ {
			for seed := int64(0); seed < 5; seed++ {
				top := topology(t, rows, cols)
				c, err := SpanningTree(top, rand.New(rand.NewSource(seed)))
				require.NoError(t, err)
				assert.Equal(t, rows*cols-1, c.Len(), "%dx%d seed %d", rows, cols, seed)
				assert.True(t, c.Connected(), "%dx%d seed %d", rows, cols, seed)
			}
		}
	}
}

func TestGenerateKeepsDegreeCapAndConnectivity(t *testing.T) {
	for _, size := range [][2]int{{2, 2}, {3, 3}, {5, 5}, {8, 6}, {12, 12}, {20, 15}} {
		for seed := int64(0); seed < 20; seed++ {
			top := topology(t, size[0], size[1])
			c, err := Generate(top, 0.3, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)
			assert.True(t, c.Connected())
			for _, room := range top.Rooms() {
				assert.LessOrEqual(t, c.Degree(room), MaxDegree, "room %v", room)
				assert.Len(t, c.Incident(room), c.Degree(room))
			}
			extra := c.Len() - (top.Size() - 1)
			assert.GreaterOrEqual(t, extra, 0)
			assert.LessOrEqual(t, extra, MaxExtra(top, 0.3))
		}
	}
}

func TestRebalanceKeepsTree(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		top := topology(t, 9, 9)
		rng := rand.New(rand.NewSource(seed))
		c, err := SpanningTree(top, rng)
		require.NoError(t, err)
		require.NoError(t, rebalance(c, rng))
		assert.Equal(t, top.Size()-1, c.Len())
		assert.NoError(t, c.Validate())
	}
}

func TestRebalanceSplitsFourWayRoom(t *testing.T) {
	// a path around the board whose centre room owns four dead end branches
	top := topology(t, 3, 3)
	c := NewConnectionSet(top)
	centre := model.RoomId{Row: 1, Col: 1}
	edges := []model.Edge{
		{A: model.RoomId{Row: 0, Col: 1}, B: centre},
		{A: model.RoomId{Row: 1, Col: 0}, B: centre},
		{A: centre, B: model.RoomId{Row: 1, Col: 2}},
		{A: centre, B: model.RoomId{Row: 2, Col: 1}},
		{A: model.RoomId{Row: 0, Col: 0}, B: model.RoomId{Row: 0, Col: 1}},
		{A: model.RoomId{Row: 0, Col: 2}, B: model.RoomId{Row: 1, Col: 2}},
		{A: model.RoomId{Row: 2, Col: 1}, B: model.RoomId{Row: 2, Col: 2}},
		{A: model.RoomId{Row: 1, Col: 0}, B: model.RoomId{Row: 2, Col: 0}},
	}
	for _, e := range edges {
		require.NoError(t, c.Add(e))
	}
	require.Equal(t, 4, c.Degree(centre))

	require.NoError(t, rebalance(c, rand.New(rand.NewSource(1))))
	assert.Equal(t, 3, c.Degree(centre))
	assert.Equal(t, 8, c.Len())
	assert.NoError(t, c.Validate())
}

func TestGenerateIsDeterministic(t *testing.T) {
	top := topology(t, 10, 10)
	a, err := Generate(top, 0.2, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Generate(top, 0.2, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a.Edges(), b.Edges())
}

func TestTwoByTwoWithoutDensity(t *testing.T) {
	top := topology(t, 2, 2)
	rng := rand.New(rand.NewSource(7))
	c, err := SpanningTree(top, rng)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Connected())

	assert.Equal(t, 0, MaxExtra(top, 0))
	added, err := AddExtraEdges(c, 0, rng)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 3, c.Len())
}

func TestSingleRowUsesEveryEdge(t *testing.T) {
	top := topology(t, 1, 5)
	rng := rand.New(rand.NewSource(3))
	c, err := SpanningTree(top, rng)
	require.NoError(t, err)
	assert.ElementsMatch(t, top.AllEdges(), c.Edges())

	assert.Equal(t, 5, MaxExtra(top, 1.0))
	added, err := AddExtraEdges(c, 1.0, rng)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestMaxExtraRounding(t *testing.T) {
	assert.Equal(t, 5, MaxExtra(topology(t, 3, 3), 0.5))
	assert.Equal(t, 0, MaxExtra(topology(t, 3, 3), 0.05))
	assert.Equal(t, 1, MaxExtra(topology(t, 5, 2), 0.05))
	assert.Equal(t, 5, MaxExtra(topology(t, 10, 10), 0.05))
}

func TestMaxExtraHugeDensity(t *testing.T) {
	top := topology(t, 4, 4)
	assert.Equal(t, 32, MaxExtra(top, 1e20))
	assert.Equal(t, 32, MaxExtra(top, math.MaxFloat64))

	huge, err := Generate(top, 1e20, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	dense, err := Generate(top, 10, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	assert.Greater(t, huge.Len(), top.Size()-1)
	assert.ElementsMatch(t, dense.Edges(), huge.Edges())
}

func TestExtraEdgesRespectCap(t *testing.T) {
	top := topology(t, 6, 6)
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		c, err := SpanningTree(top, rng)
		require.NoError(t, err)
		require.NoError(t, rebalance(c, rng))
		added, err := AddExtraEdges(c, 10, rng)
		require.NoError(t, err)
		assert.Equal(t, top.Size()-1+added, c.Len())
		for _, room := range top.Rooms() {
			assert.LessOrEqual(t, c.Degree(room), MaxDegree)
		}
	}
}

func TestInvalidDensity(t *testing.T) {
	top := topology(t, 3, 3)
	for _, d := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		_, err := Generate(top, d, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	list := []int{0, 1, 2, 3, 4, 5, 6, 7}
	Shuffle(list, rand.New(rand.NewSource(9)))
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, list)
}
