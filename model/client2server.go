package model

type ClientMessage struct {
	Move    Direction
	HasMove bool
	Advance bool
}
