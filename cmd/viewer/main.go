package main

import (
	"os"

	"github.com/hajimehoshi/ebiten"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()
	url := os.Getenv("VIEWER_URL")
	if url == "" {
		url = "ws://localhost:8080/play"
		log.Printf("Defaulting to %s", url)
	}

	conn, err := Dial(url)
	if err != nil {
		log.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()

	viewer, err := NewViewer(conn)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.Run(viewer.update, screenWidth, screenHeight, 1, "Rooms"); err != nil {
		log.Fatal(err)
	}
}
