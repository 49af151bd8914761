package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/roomgrid/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	screenWidth  = 640
	screenHeight = 680
	boardTop     = 40
	wallWidth    = 4
)

var (
	colorBackground = color.RGBA{70, 70, 70, 255}
	colorWall       = color.RGBA{230, 230, 230, 255}
	colorTrigger    = color.RGBA{0xed, 0xbc, 0x1e, 255}
	colorVisitor    = color.RGBA{0xfa, 0x36, 0x36, 255}
)

type ViewerState int

const (
	WAITING ViewerState = iota + 1
	IDLE
	FADING
	CLOSED
)

func (s ViewerState) Name() string {
	switch s {
	case WAITING:
		return "WAITING"
	case IDLE:
		return "IDLE"
	case FADING:
		return "FADING"
	case CLOSED:
		return "CLOSED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Viewer struct {
	State      ViewerState
	Snapshot   model.Snapshot
	Visitor    model.RoomId
	walls      [][4]bool
	triggers   map[model.DoorwayInstruction]bool
	Frame      *Nine
	Tweens     map[*gween.Tween]Action
	alpha      float64
	IndexLabel *ebiten.Image
	conn       *Connection
	font       font.Face
}

func NewViewer(conn *Connection) (*Viewer, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	frame, err := newFrame()
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    24,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Viewer{
		State:  WAITING,
		Frame:  frame,
		Tweens: make(map[*gween.Tween]Action),
		alpha:  1,
		conn:   conn,
		font:   face,
	}, nil
}

func (v *Viewer) prepareTextImage(s string) *ebiten.Image {
	image, _ := ebiten.NewImage(300, 36, ebiten.FilterLinear)
	text.Draw(image, s, v.font, 5, 28, color.White)
	return image
}

// apply takes one server message. A new layout index fades the board in again.
func (v *Viewer) apply(mes model.ServerMessage) {
	for _, m := range mes.Moves {
		if m.Success {
			v.Visitor = model.RoomId{Row: m.Row, Col: m.Col}
		}
	}
	for _, snap := range mes.Snapshots {
		changed := v.State == WAITING || snap.Index != v.Snapshot.Index
		v.Snapshot = snap
		v.Visitor = snap.Visitor
		v.walls = model.ClosedWalls(snap.Rows, snap.Cols, snap.Doorways)
		v.triggers = make(map[model.DoorwayInstruction]bool)
		for _, t := range snap.Triggers {
			v.triggers[t] = true
		}
		v.IndexLabel = v.prepareTextImage(fmt.Sprintf("layout %d / %d", snap.Index+1, snap.Count))
		if changed {
			v.fadeIn()
		}
	}
}

func (v *Viewer) fadeIn() {
	v.State = FADING
	t := gween.New(0, 1, 0.4, ease.OutQuad)
	a := Action{onChange: func(f float32) { v.alpha = float64(f) }}
	a.addOnFinish(func() { v.State = IDLE })
	v.Tweens[t] = a
}

func (v *Viewer) input() {
	keys := map[ebiten.Key]model.Direction{
		ebiten.KeyRight: model.East,
		ebiten.KeyDown:  model.South,
		ebiten.KeyLeft:  model.West,
		ebiten.KeyUp:    model.North,
	}
	for k, d := range keys {
		if inpututil.IsKeyJustPressed(k) {
			if err := v.conn.Send(model.ClientMessage{Move: d, HasMove: true}); err != nil {
				log.Warnf("send move %v", err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := v.conn.Send(model.ClientMessage{Advance: true}); err != nil {
			log.Warnf("send advance %v", err)
		}
	}
}

func (v *Viewer) update(screen *ebiten.Image) error {
	v.updateTweens(1.0 / 60)

loop:
	for {
		select {
		case mes := <-v.conn.Messages:
			v.apply(mes)
		case <-v.conn.Closed:
			v.State = CLOSED
			break loop
		default:
			break loop
		}
	}

	if v.State == IDLE || v.State == FADING {
		v.input()
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	if err := screen.Fill(colorBackground); err != nil {
		return err
	}
	if v.State != WAITING {
		if err := v.draw(screen); err != nil {
			return err
		}
	}
	ebitenutil.DebugPrintAt(screen, v.State.Name(), screenWidth-80, 0)
	return nil
}

func (v *Viewer) draw(screen *ebiten.Image) error {
	snap := v.Snapshot
	size := math.Min(float64(screenWidth)/float64(snap.Cols), float64(screenHeight-boardTop)/float64(snap.Rows))
	v.Frame.alpha = v.alpha

	for r := 0; r < snap.Rows; r++ {
		for c := 0; c < snap.Cols; c++ {
			x, y := float64(c)*size, boardTop+float64(r)*size
			if err := v.Frame.Draw(screen, x+wallWidth, y+wallWidth, size-2*wallWidth, size-2*wallWidth); err != nil {
				return err
			}
			room := model.RoomId{Row: r, Col: c}
			for _, d := range model.Directions {
				clr := color.Color(nil)
				switch {
				case v.walls[r*snap.Cols+c][d]:
					clr = colorWall
				case v.triggers[model.DoorwayInstruction{Room: room, Direction: d, Primary: true}]:
					clr = colorTrigger
				default:
					continue
				}
				wx, wy, ww, wh := wallRect(d, x, y, size)
				ebitenutil.DrawRect(screen, wx, wy, ww, wh, fade(clr, v.alpha))
			}
		}
	}

	vx, vy := float64(v.Visitor.Col)*size, boardTop+float64(v.Visitor.Row)*size
	ebitenutil.DrawRect(screen, vx+size/3, vy+size/3, size/3, size/3, colorVisitor)

	if v.IndexLabel != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(10, 2)
		return screen.DrawImage(v.IndexLabel, op)
	}
	return nil
}

func wallRect(d model.Direction, x, y, size float64) (float64, float64, float64, float64) {
	switch d {
	case model.East:
		return x + size - wallWidth, y, wallWidth, size
	case model.South:
		return x, y + size - wallWidth, size, wallWidth
	case model.West:
		return x, y, wallWidth, size
	default:
		return x, y, size, wallWidth
	}
}

func fade(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}
