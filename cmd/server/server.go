package main

import (
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roomgrid/config"
	"github.com/zucenko/roomgrid/server"
)

type Server struct {
	router       *way.Router
	LayoutServer *server.LayoutServer
}

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(settings.LogLevel)
	log.Infof("grid %dx%d, %d layouts, density %v, seed %d",
		settings.Layout.Rows, settings.Layout.Columns, settings.Layout.Count,
		settings.Layout.DensityFactor, settings.Layout.Seed)

	s := Server{
		LayoutServer: server.NewLayoutServer(settings),
	}
	go s.LayoutServer.Loop()
	s.routes()
	log.Printf("listening on port %s", settings.Port)
	log.Fatalln(http.ListenAndServe(":"+settings.Port, s.router))
}
