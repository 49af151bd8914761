package server

import (
	"encoding/gob"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roomgrid/config"
	"github.com/zucenko/roomgrid/layout"
	"github.com/zucenko/roomgrid/model"
)

var errConnectTimeout = errors.New("viewer connection not taken over in time")

func NewLayoutServer(settings config.Settings) *LayoutServer {
	return &LayoutServer{
		Settings:        settings,
		Sessions:        make([]*Session, 0),
		SessionRequests: make(chan SessionRequest),
		Upgrader:        &websocket.Upgrader{},
		Timeout:         200 * time.Millisecond,
		seeds:           rand.New(rand.NewSource(settings.Layout.Seed)),
	}
}

func (s *LayoutServer) HandleHttpCall() http.HandlerFunc {
	timeout := s.Timeout
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		// buffered so Loop never blocks on a handler that already gave up
		req := SessionRequest{SessionAwaiting: make(chan SessionAwaiting, 1)}
		if v := r.URL.Query().Get("seed"); v != "" {
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				log.Warnf("HandleHttpCall bad seed %q", v)
				w.WriteHeader(HTTP_BAD_REQUEST)
				return
			}
			req.Seed, req.HasSeed = seed, true
		}

		select {
		case s.SessionRequests <- req:
			log.Printf("HandleHttpCall -> LayoutServer.SessionRequests")
		case <-time.After(timeout):
			log.Warn("SessionRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var sa SessionAwaiting
		select {
		case sa = <-req.SessionAwaiting:
			log.Printf("HandleHttpCall SessionAwaiting <- code:%d", sa.ResponseCode)
			switch sa.ResponseCode {
			case SESSION_NOT_FOUND, SESSION_INVALID:
				w.WriteHeader(sa.ResponseCode.ToHttp())
				return
			case SESSION_READY:
				log.Printf("HandleHttpCall ok, have Session")
			default:
				log.Errorf("sa.ResponseCode not expected:%v", sa.ResponseCode)
				w.WriteHeader(HTTP_SERVER_ERR)
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall SessionAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the request
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		if !sa.Session.connect(ConnectRequest{Con: con, GameOver: gameOver}, timeout) {
			return
		}

		log.Info("HandleHttpCall wait for game over")
		<-gameOver
	}
}

// HandleAscii renders the first layout of the set generated for the :seed path parameter.
func (s *LayoutServer) HandleAscii() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed, err := strconv.ParseInt(way.Param(r.Context(), "seed"), 10, 64)
		if err != nil {
			w.WriteHeader(HTTP_BAD_REQUEST)
			return
		}
		cfg := s.Settings.Layout
		cfg.Seed = seed
		layouts, err := layout.New(cfg)
		if err != nil {
			log.Warnf("HandleAscii seed %d: %v", seed, err)
			w.WriteHeader(HTTP_BAD_REQUEST)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(HTTP_SUCCESS)
		w.Write([]byte(layouts.Current().String()))
	}
}

func (s *LayoutServer) Loop() {
	log.Printf("LayoutServer.Loop starting")
	for req := range s.SessionRequests {
		s.prune()
		seed := req.Seed
		if !req.HasSeed {
			seed = s.seeds.Int63()
		}
		log.Infof("create Session seed:%d", seed)
		session, err := NewSession(s.Settings, seed)
		if err != nil {
			log.Warnf("LayoutServer.Loop cannot generate layouts: %v", err)
			req.SessionAwaiting <- SessionAwaiting{ResponseCode: SESSION_INVALID}
			continue
		}
		go session.Loop()
		s.Sessions = append(s.Sessions, session)

		req.SessionAwaiting <- SessionAwaiting{
			ResponseCode: SESSION_READY,
			Session:      session,
		}
	}
}

// prune forgets sessions whose viewer is gone. Runs on the Loop goroutine only.
func (s *LayoutServer) prune() {
	alive := s.Sessions[:0]
	for _, session := range s.Sessions {
		select {
		case <-session.Done:
		default:
			alive = append(alive, session)
		}
	}
	s.Sessions = alive
}

// connect hands the viewer connection to the session. On timeout the session is ended, it would
// never get a viewer otherwise.
func (gs *Session) connect(cr ConnectRequest, timeout time.Duration) bool {
	select {
	case gs.ConnectRequests <- cr:
		return true
	case <-time.After(timeout):
		log.Warn("HandleHttpCall ConnectRequests TIMEOUTED")
		gs.fail(errConnectTimeout)
		return false
	}
}

func (gs *Session) Loop() {
	log.Info("Session.Loop start")
	defer close(gs.Done)
	for {
		select {
		case cr := <-gs.ConnectRequests:
			log.Info("Session.Loop ConnectRequests")
			gs.addViewer(cr.Con, cr.GameOver)
			gs.State = SS_PLAY
			gs.Viewer.State = VS_PLAY
			gs.send(model.ServerMessage{Snapshots: []model.Snapshot{gs.Snapshot()}})
		case err := <-gs.Errors:
			gs.State = SS_ERR
			viewerState := VS_ERR
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				gs.State, viewerState = SS_OVER, VS_OVER
				log.Info("Session over")
			} else {
				log.Warnf("killing Session: %v", err)
			}
			if gs.Viewer != nil {
				gs.Viewer.State = viewerState
				close(gs.Viewer.MessagesToSend)
				close(gs.Viewer.GameOver)
			}
			return
		case cm := <-gs.Events:
			if gs.Viewer == nil {
				continue
			}
			gs.send(gs.Turn(cm))
		}
	}
}

// Turn applies one viewer command to the session.
func (gs *Session) Turn(cm model.ClientMessage) model.ServerMessage {
	if cm.Advance {
		gs.Layouts.Advance()
		log.Debugf("Session advance to layout %d", gs.Layouts.Index())
		return model.ServerMessage{Snapshots: []model.Snapshot{gs.Snapshot()}}
	}
	if !cm.HasMove {
		return model.ServerMessage{}
	}
	result := gs.move(cm.Move)
	message := model.ServerMessage{Moves: []model.MoveResult{result}}
	if result.Triggered {
		message.Snapshots = []model.Snapshot{gs.Snapshot()}
	}
	return message
}

// move steps the visitor through an open doorway. Crossing a trigger advances the layout;
// the visitor keeps its coordinates in the new layout.
func (gs *Session) move(d model.Direction) model.MoveResult {
	result := model.MoveResult{Direction: d, Row: gs.Visitor.Row, Col: gs.Visitor.Col}
	if !d.Valid() {
		return result
	}
	current := gs.Layouts.Current()
	if !current.Open(gs.Visitor, d) {
		return result
	}
	from := gs.Visitor
	gs.Visitor = from.Step(d)
	result.Row, result.Col, result.Success = gs.Visitor.Row, gs.Visitor.Col, true

	e, _ := model.NewEdge(from, gs.Visitor)
	if gs.Triggers[gs.Layouts.Index()].Has(e) {
		gs.Layouts.Advance()
		result.Triggered = true
		log.Debugf("Session trigger %v, layout %d", e, gs.Layouts.Index())
	}
	return result
}

func (gs *Session) addViewer(conn *websocket.Conn, gameOver chan struct{}) {
	log.Printf("Session.addViewer")
	vs := &ViewerSession{
		State:          VS_NEW,
		Session:        gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			vs.DebugLastPing = time.Now()
			vs.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go vs.LoopChannelRead()
	go vs.LoopChannelWrite()
	gs.Viewer = vs
}

func (gs *Session) send(mes model.ServerMessage) {
	select {
	case gs.Viewer.MessagesToSend <- mes:
	default:
		log.Warnf("Session.send dropping message, MessagesToSend FULL")
	}
}

func (gs *Session) fail(err error) {
	select {
	case gs.Errors <- err:
	default:
	}
}

func (vs *ViewerSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED")
	for {
		_, r, err := vs.Conn.NextReader()
		if err != nil {
			log.Printf("LoopChannelRead err reading message from Conn %v", err)
			vs.Session.fail(err)
			break
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			vs.Session.fail(err)
			break
		}
		log.Debug(cm)
		vs.DebugLastMessage = time.Now()
		vs.DebugInMessages++

		select {
		case vs.Session.Events <- cm:
		default:
			log.Warnf("Dropping message read from socket, Session.Events FULL")
		}
	}
	log.Printf("LoopChannelRead ENDED")
}

// LoopChannelWrite only consumes, so a full buffer never blocks the session for long.
func (vs *ViewerSession) LoopChannelWrite() {
	log.Printf("ViewerSession.LoopChannelWrite STARTED")
	for mes := range vs.MessagesToSend {
		w, err := vs.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			log.Warnf("ViewerSession.LoopChannelWrite cant get writer %v", err)
			vs.Session.fail(err)
			break
		}
		if err := gob.NewEncoder(w).Encode(mes); err != nil {
			log.Warnf("ViewerSession.LoopChannelWrite cant encode %v", err)
			vs.Session.fail(err)
			break
		}
		if err := w.Close(); err != nil {
			log.Warnf("ViewerSession.LoopChannelWrite cant close writer %v", err)
			vs.Session.fail(err)
			break
		}
		vs.DebugOutMessages++
	}
	log.Printf("LoopChannelWrite ENDED")
}
