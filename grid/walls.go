package grid

import "github.com/zucenko/roomgrid/model"

// Doorways returns the two wall openings of e. The smaller room opens its South or East wall
// and is the primary side; the other room opens the opposite wall.
func Doorways(e model.Edge) (primary, secondary model.DoorwayInstruction) {
	// edges of a ConnectionSet are adjacent, so the lookup cannot fail
	dir, _ := model.DirectionTo(e.A, e.B)
	primary = model.DoorwayInstruction{Room: e.A, Direction: dir, Primary: true}
	secondary = model.DoorwayInstruction{Room: e.B, Direction: dir.Opposite()}
	return
}

// MapWalls emits both openings of every edge, pair by pair in edge order.
func MapWalls(c *ConnectionSet) []model.DoorwayInstruction {
	instructions := make([]model.DoorwayInstruction, 0, 2*c.Len())
	for _, e := range c.edges {
		primary, secondary := Doorways(e)
		instructions = append(instructions, primary, secondary)
	}
	return instructions
}
