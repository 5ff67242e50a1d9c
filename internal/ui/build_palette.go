// internal/ui/build_palette.go
package ui

import (
	"fmt"
	"image/color"

	"go-dungeon-defense/internal/defs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// BuildPalette — список архетипов структур; выбирается клавишами 1..N.
type BuildPalette struct {
	X, Y     float32
	Width    float32
	fontFace font.Face
	ids      []string
	lib      *defs.Library
	Selected int
}

func NewBuildPalette(x, y, width float32, face font.Face, lib *defs.Library) *BuildPalette {
	return &BuildPalette{X: x, Y: y, Width: width, fontFace: face, ids: lib.StructureIDs(), lib: lib}
}

// Select выбирает архетип по номеру (с нуля). Неверный номер игнорируется.
func (b *BuildPalette) Select(index int) {
	if index >= 0 && index < len(b.ids) {
		b.Selected = index
	}
}

// Current возвращает ID выбранного архетипа.
func (b *BuildPalette) Current() string {
	if len(b.ids) == 0 {
		return ""
	}
	return b.ids[b.Selected]
}

func (b *BuildPalette) Len() int { return len(b.ids) }

func (b *BuildPalette) Draw(screen *ebiten.Image, currency int) {
	rowHeight := float32(22)
	height := rowHeight*float32(len(b.ids)) + 30

	bgColor := color.RGBA{R: 20, G: 20, B: 30, A: 230}
	vector.DrawFilledRect(screen, b.X, b.Y, b.Width, height, bgColor, false)
	borderColor := color.RGBA{R: 70, G: 100, B: 120, A: 255}
	vector.StrokeRect(screen, b.X, b.Y, b.Width, height, 2, borderColor, false)

	text.Draw(screen, "Build", b.fontFace, int(b.X)+10, int(b.Y)+18, color.White)

	for i, id := range b.ids {
		def := b.lib.Structures[id]
		y := b.Y + 30 + rowHeight*float32(i)
		if i == b.Selected {
			vector.DrawFilledRect(screen, b.X+4, y, b.Width-8, rowHeight-2, color.RGBA{70, 100, 120, 200}, false)
		}
		vector.DrawFilledCircle(screen, b.X+16, y+rowHeight/2-1, 6, def.Visuals.Color, true)

		textColor := color.RGBA{255, 255, 255, 255}
		if currency < def.Cost {
			textColor = color.RGBA{100, 100, 100, 255}
		}
		label := fmt.Sprintf("%d %s  %d", i+1, def.Name, def.Cost)
		text.Draw(screen, label, b.fontFace, int(b.X)+28, int(y+rowHeight/2)+4, textColor)
	}
}
