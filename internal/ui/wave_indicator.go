package ui

import (
	"image/color"

	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator отображает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y             float32
	Color            color.RGBA
	BossColor        color.RGBA
	OutlineColor     color.RGBA
	OutlineThickness int
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y float32) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		Color:            config.IdleStateColor,
		BossColor:        config.WaveStateColor,
		OutlineColor:     config.TextLightColor,
		OutlineThickness: 1,
	}
}

// Draw отрисовывает индикатор на экране.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, waveNumber, total int, boss bool) {
	if waveNumber <= 0 {
		return
	}

	label := utils.ToRoman(waveNumber) + " / " + utils.ToRoman(total)

	textColor := i.Color
	if boss {
		textColor = i.BossColor // Красный для босс-волн
	}

	// Центрируем текст
	bounds := text.BoundString(face, label)
	textX := int(i.X) - bounds.Dx()/2
	textY := int(i.Y)

	// Рисуем обводку
	for y := -i.OutlineThickness; y <= i.OutlineThickness; y++ {
		for x := -i.OutlineThickness; x <= i.OutlineThickness; x++ {
			if x == 0 && y == 0 {
				continue
			}
			text.Draw(screen, label, face, textX+x, textY+y, i.OutlineColor)
		}
	}
	text.Draw(screen, label, face, textX, textY, textColor)
}
