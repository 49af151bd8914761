package server

import (
	"math/rand"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/roomgrid/config"
	"github.com/zucenko/roomgrid/layout"
	"github.com/zucenko/roomgrid/model"
	"github.com/zyedidia/generic/mapset"
)

type LayoutServer struct {
	Settings        config.Settings
	Sessions        []*Session
	SessionRequests chan SessionRequest
	Upgrader        *websocket.Upgrader
	Timeout         time.Duration
	seeds           *rand.Rand
}

type SessionState int

const (
	SS_NEW SessionState = iota
	SS_PLAY
	SS_ERR
	SS_OVER
)

// Session owns one LayoutSet. Only its Loop goroutine touches Layouts.
type Session struct {
	State           SessionState
	Seed            int64
	Layouts         *layout.Set
	Triggers        []mapset.Set[model.Edge]
	Visitor         model.RoomId
	Viewer          *ViewerSession
	Errors          chan error
	Events          chan model.ClientMessage
	ConnectRequests chan ConnectRequest
	Done            chan struct{}
}

type ViewerSessionState int

const (
	VS_NEW ViewerSessionState = iota + 1
	VS_PLAY
	VS_OVER
	VS_ERR
)

type ViewerSession struct {
	State    ViewerSessionState
	Session  *Session
	Conn     *websocket.Conn
	GameOver chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
