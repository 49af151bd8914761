package main

import (
	"encoding/gob"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roomgrid/model"
)

type Connection struct {
	conn     *websocket.Conn
	Messages chan model.ServerMessage
	Closed   chan struct{}
}

func Dial(url string) (*Connection, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	c := &Connection{
		conn:     conn,
		Messages: make(chan model.ServerMessage, 10),
		Closed:   make(chan struct{}),
	}
	go c.loopRead()
	return c, nil
}

func (c *Connection) loopRead() {
	defer close(c.Closed)
	for {
		_, r, err := c.conn.NextReader()
		if err != nil {
			log.Warnf("Connection.loopRead %v", err)
			return
		}
		var mes model.ServerMessage
		if err := gob.NewDecoder(r).Decode(&mes); err != nil {
			log.Warnf("Connection.loopRead cant decode %v", err)
			return
		}
		c.Messages <- mes
	}
}

// Send must only be called from the ebiten update goroutine.
func (c *Connection) Send(cm model.ClientMessage) error {
	w, err := c.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(cm); err != nil {
		return err
	}
	return w.Close()
}

func (c *Connection) Close() error {
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
