package main

import (
	"image"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-patch: corners keep their size, edges and centre stretch.
type Nine struct {
	image          *ebiten.Image
	alpha          float64
	R, G, B, Scale float64
	positions      [4][2]int
}

// source breakpoints of the frame image, top-left corner to bottom-right corner
var framePositions = [4][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}

func (n *Nine) Draw(screen *ebiten.Image, x, y, width, height float64) error {
	var targetX, targetY [4]float64
	targetX[0], targetY[0] = x, y
	targetX[1] = x + n.Scale*float64(n.positions[1][0]-n.positions[0][0])
	targetY[1] = y + n.Scale*float64(n.positions[1][1]-n.positions[0][1])
	targetX[2] = x + width - n.Scale*float64(n.positions[3][0]-n.positions[2][0])
	targetY[2] = y + height - n.Scale*float64(n.positions[3][1]-n.positions[2][1])
	targetX[3], targetY[3] = x+width, y+height

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			srcW := n.positions[i+1][0] - n.positions[i][0]
			srcH := n.positions[j+1][1] - n.positions[j][1]
			if srcW == 0 || srcH == 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale((targetX[i+1]-targetX[i])/float64(srcW), (targetY[j+1]-targetY[j])/float64(srcH))
			op.GeoM.Translate(targetX[i], targetY[j])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			rect := image.Rect(n.positions[i][0], n.positions[j][1], n.positions[i+1][0], n.positions[j+1][1])
			if err := screen.DrawImage(n.image.SubImage(rect).(*ebiten.Image), op); err != nil {
				return err
			}
		}
	}
	return nil
}

// newFrame builds a 3x3 source image: bright border, dim centre.
func newFrame() (*Nine, error) {
	img, err := ebiten.NewImage(3, 3, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	pixels := make([]byte, 3*3*4)
	for i := 0; i < 9; i++ {
		v := byte(0xff)
		if i == 4 {
			v = 0x30
		}
		pixels[4*i], pixels[4*i+1], pixels[4*i+2], pixels[4*i+3] = v, v, v, 0xff
	}
	if err := img.ReplacePixels(pixels); err != nil {
		return nil, err
	}
	return &Nine{
		image:     img,
		alpha:     1,
		R:         .55,
		G:         .6,
		B:         .7,
		Scale:     3,
		positions: framePositions,
	}, nil
}
