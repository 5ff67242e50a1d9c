// internal/ui/rank_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	comboBarWidth  = 118
	comboBarHeight = 12
	rankRectWidth  = 8
	rankRectHeight = 12
	rankRectGap    = 3
	borderWidth    = 1
)

var (
	comboBarColorFill = color.RGBA{255, 215, 0, 220}
	rankColorFill     = color.RGBA{70, 100, 120, 220}
	borderColor       = color.White
)

// RankIndicator показывает ранг игрока, очки исследований и таймер комбо.
type RankIndicator struct {
	X, Y float32
}

func NewRankIndicator(x, y float32) *RankIndicator {
	return &RankIndicator{X: x, Y: y}
}

// Draw отрисовывает индикатор. comboLeft — доля оставшегося времени комбо.
func (i *RankIndicator) Draw(screen *ebiten.Image, face font.Face, rank, maxRank, research, combo int, comboLeft float64) {
	// Полоса комбо
	vector.StrokeRect(screen, i.X, i.Y, comboBarWidth, comboBarHeight, borderWidth, borderColor, true)
	if comboLeft > 1 {
		comboLeft = 1
	}
	if fill := float32(float64(comboBarWidth-borderWidth*2) * comboLeft); fill > 0 {
		vector.DrawFilledRect(screen, i.X+borderWidth, i.Y+borderWidth, fill, comboBarHeight-borderWidth*2, comboBarColorFill, true)
	}
	if combo > 0 {
		text.Draw(screen, fmt.Sprintf("x%d", combo), face, int(i.X+comboBarWidth+6), int(i.Y+comboBarHeight-1), color.White)
	}

	// Прямоугольники ранга
	rectY := i.Y + comboBarHeight + 10
	for j := 0; j < maxRank; j++ {
		rectX := i.X + float32(j)*(rankRectWidth+rankRectGap)
		vector.StrokeRect(screen, rectX, rectY, rankRectWidth, rankRectHeight, borderWidth, borderColor, true)
		if j < rank {
			vector.DrawFilledRect(screen, rectX+borderWidth, rectY+borderWidth, rankRectWidth-borderWidth*2, rankRectHeight-borderWidth*2, rankColorFill, true)
		}
	}
	text.Draw(screen, fmt.Sprintf("research %d", research), face, int(i.X), int(rectY+rankRectHeight+14), color.White)
}
