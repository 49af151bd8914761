package model

type ServerMessage struct {
	Snapshots []Snapshot
	Moves     []MoveResult
}

// Snapshot is everything the viewer needs to draw the active layout.
type Snapshot struct {
	Index, Count int
	Rows, Cols   int
	Spacing      float64
	Doorways     []DoorwayInstruction
	Triggers     []DoorwayInstruction
	Visitor      RoomId
}

type MoveResult struct {
	Direction Direction
	Row, Col  int
	Success   bool
	Triggered bool
}
