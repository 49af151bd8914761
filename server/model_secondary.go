package server

import (
	"fmt"

	"github.com/gorilla/websocket"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	SESSION_READY ResponseCode = iota
	SESSION_NOT_FOUND
	SESSION_INVALID
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case SESSION_READY:
		return HTTP_SUCCESS
	case SESSION_NOT_FOUND:
		return HTTP_NOT_FOUND
	case SESSION_INVALID:
		return HTTP_BAD_REQUEST
	default:
		panic(h)
	}
}

func (ss SessionState) Name() string {
	switch ss {
	case SS_NEW:
		return "SS_NEW"
	case SS_PLAY:
		return "SS_PLAY"
	case SS_ERR:
		return "SS_ERR"
	case SS_OVER:
		return "SS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", ss)
	}
}

func (vs ViewerSessionState) Name() string {
	switch vs {
	case VS_NEW:
		return "NEW"
	case VS_PLAY:
		return "PLAY"
	case VS_OVER:
		return "OVER"
	case VS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

type SessionAwaiting struct {
	ResponseCode ResponseCode
	Session      *Session
}

type SessionRequest struct {
	Seed            int64
	HasSeed         bool
	SessionAwaiting chan SessionAwaiting
}

type ConnectRequest struct {
	Con      *websocket.Conn
	GameOver chan struct{}
}
