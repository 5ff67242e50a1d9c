// internal/ui/lives_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	LivesCols          = 5
	LivesCircleRadius  = 6.0
	LivesCircleSpacing = 3.0
)

var (
	livesFullColor  = color.RGBA{50, 100, 255, 255}
	livesLowColor   = color.RGBA{220, 60, 60, 255}
	livesEmptyColor = color.RGBA{0, 0, 0, 255}
)

// LivesIndicator отображает запас жизней в виде сетки кружков.
type LivesIndicator struct {
	X, Y float32
}

func NewLivesIndicator(x, y float32) *LivesIndicator {
	return &LivesIndicator{X: x, Y: y}
}

// Draw рисует индикатор. Когда жизней осталось не больше половины стартового
// запаса, все кружки становятся красными.
func (i *LivesIndicator) Draw(screen *ebiten.Image, face font.Face, lives, startLives int) {
	cells := startLives
	if lives > cells {
		cells = lives
	}
	half := startLives / 2

	step := float32(LivesCircleRadius*2 + LivesCircleSpacing)
	for j := 0; j < cells; j++ {
		row := j / LivesCols
		col := j % LivesCols
		cx := i.X + float32(col)*step + LivesCircleRadius
		cy := i.Y + float32(row)*step + LivesCircleRadius

		fill := livesEmptyColor
		if j < lives {
			if lives <= half {
				fill = livesLowColor
			} else {
				fill = livesFullColor
			}
		}
		vector.DrawFilledCircle(screen, cx, cy, LivesCircleRadius, fill, true)
		vector.StrokeCircle(screen, cx, cy, LivesCircleRadius, 1, color.White, true)
	}

	label := strconv.Itoa(lives) + "/" + strconv.Itoa(startLives)
	text.Draw(screen, label, face, int(i.X), int(i.Y)-6, color.White)
}
