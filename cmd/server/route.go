package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_ASCII = "/layouts/:seed"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.LayoutServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_ASCII, s.LayoutServer.HandleAscii())
}
