package render

import (
	"fmt"
	"image/color"
	"math"

	"go-dungeon-defense/internal/app"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/pkg/gridmap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// GridRenderer рисует карту и все сущности из снимка симуляции.
type GridRenderer struct {
	tileSize     float64
	offsetX      float64
	offsetY      float64
	screenWidth  int
	screenHeight int
	fillImg      *ebiten.Image
	fillVs       []ebiten.Vertex
	fillIs       []uint16
	fontFace     font.Face
	colors       *MapColors
	entity       EntityColors
	mapImage     *ebiten.Image // Поле для предрендеренной карты
}

func NewGridRenderer(tileSize, offsetX, offsetY float64, screenWidth, screenHeight int, face font.Face, colors *MapColors, entity EntityColors) *GridRenderer {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	return &GridRenderer{
		tileSize:     tileSize,
		offsetX:      offsetX,
		offsetY:      offsetY,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		fillImg:      fillImg,
		fillVs:       make([]ebiten.Vertex, 0, 8),
		fillIs:       make([]uint16, 0, 12),
		fontFace:     face,
		colors:       colors,
		entity:       entity,
		mapImage:     ebiten.NewImage(screenWidth, screenHeight),
	}
}

// ToScreen converts a position in tile units to screen pixels.
func (r *GridRenderer) ToScreen(x, y float64) (float32, float32) {
	return float32(r.offsetX + x*r.tileSize + r.tileSize/2), float32(r.offsetY + y*r.tileSize + r.tileSize/2)
}

// ScreenToTile returns the tile under a screen pixel.
func (r *GridRenderer) ScreenToTile(x, y int) gridmap.Point {
	return gridmap.PixelToPoint(float64(x)-r.offsetX, float64(y)-r.offsetY, r.tileSize)
}

// RenderMapImage создаёт предрендеренное изображение задника. Вызывается при каждом новом забеге.
func (r *GridRenderer) RenderMapImage(grid *gridmap.Grid, path []gridmap.Point) {
	r.mapImage.Clear()
	r.mapImage.Fill(r.colors.BackgroundColor)

	onPath := make(map[gridmap.Point]struct{}, len(path))
	for _, p := range path {
		onPath[p] = struct{}{}
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := gridmap.Point{X: x, Y: y}
			var fill color.RGBA
			switch {
			case p == grid.Entry:
				fill = r.colors.EntryColor
			case p == grid.Exit:
				fill = r.colors.ExitColor
			case grid.At(p) == gridmap.Wall:
				fill = r.colors.WallColor
			default:
				if _, ok := onPath[p]; ok {
					fill = r.colors.PathColor
				} else {
					fill = r.colors.OpenColor
				}
			}
			r.drawTile(r.mapImage, p, fill)
		}
	}
}

func (r *GridRenderer) drawTile(target *ebiten.Image, p gridmap.Point, fill color.RGBA) {
	x := float32(r.offsetX + float64(p.X)*r.tileSize)
	y := float32(r.offsetY + float64(p.Y)*r.tileSize)
	size := float32(r.tileSize)

	path := vector.Path{}
	path.MoveTo(x, y)
	path.LineTo(x+size, y)
	path.LineTo(x+size, y+size)
	path.LineTo(x, y+size)
	path.Close()

	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	for i := range r.fillVs {
		r.fillVs[i].ColorR = float32(fill.R) / 255
		r.fillVs[i].ColorG = float32(fill.G) / 255
		r.fillVs[i].ColorB = float32(fill.B) / 255
		r.fillVs[i].ColorA = float32(fill.A) / 255
	}
	target.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	vector.StrokeRect(target, x, y, size, size, r.colors.StrokeWidth/2, LightenColor(fill, 40), true)
}

// Draw рисует кадр: задник, структуры, врагов, снаряды, эффекты и всплывающие числа.
func (r *GridRenderer) Draw(screen *ebiten.Image, snap app.Snapshot) {
	screen.DrawImage(r.mapImage, nil)

	for _, s := range snap.Structures {
		r.drawStructure(screen, s)
	}
	for _, e := range snap.Enemies {
		r.drawEnemy(screen, e)
	}
	for _, p := range snap.Projectiles {
		x, y := r.ToScreen(p.X, p.Y)
		vector.DrawFilledCircle(screen, x, y, float32(r.tileSize*0.1), p.Color, true)
	}
	for _, e := range snap.Effects {
		r.drawEffect(screen, e)
	}
	for _, t := range snap.Texts {
		x, y := r.ToScreen(t.X, t.Y)
		c := Fade(t.Color, 1-t.Progress)
		bounds := text.BoundString(r.fontFace, t.Value)
		text.Draw(screen, t.Value, r.fontFace, int(x)-bounds.Dx()/2, int(y), c)
	}
}

func (r *GridRenderer) drawStructure(screen *ebiten.Image, s app.StructureView) {
	x, y := r.ToScreen(float64(s.Tile.X), float64(s.Tile.Y))
	radius := float32(r.tileSize) * float32(s.Radius)

	fill := s.Color
	if s.Flash {
		fill = r.entity.DamageFlashColor
	} else if !s.Armed && s.Kind == defs.KindPulseTrap {
		fill = DarkenColor(fill)
	}
	vector.DrawFilledCircle(screen, x, y, radius, fill, true)

	stroke := r.entity.StrokeColor
	if s.Ultimate {
		stroke = r.entity.UltimateColor
	}
	vector.StrokeCircle(screen, x, y, radius, r.colors.StrokeWidth, stroke, true)

	if s.Kind == defs.KindTurret {
		// "Голова" турели смотрит на последнюю цель.
		hx := x + float32(math.Cos(s.Angle))*radius
		hy := y + float32(math.Sin(s.Angle))*radius
		vector.StrokeLine(screen, x, y, hx, hy, r.colors.StrokeWidth+1, stroke, true)
	}
	if s.Selected && s.Stats.Range > 0 {
		vector.StrokeCircle(screen, x, y, float32(s.Stats.Range*r.tileSize), 1, r.entity.StrokeColor, true)
	}
	if s.Level > 1 {
		label := fmt.Sprintf("%d", s.Level)
		text.Draw(screen, label, r.fontFace, int(x+radius), int(y-radius), r.colors.TextLightColor)
	}
	r.drawHealthBar(screen, x, y-radius-6, s.Health, s.MaxHealth)
}

func (r *GridRenderer) drawEnemy(screen *ebiten.Image, e app.EnemyView) {
	x, y := r.ToScreen(e.X, e.Y)
	radius := float32(r.tileSize) * float32(e.Radius)
	fill := e.Color
	switch {
	case e.Flash:
		fill = r.entity.DamageFlashColor
	case e.Slowed:
		fill = r.entity.SlowedColor
	}
	vector.DrawFilledCircle(screen, x, y, radius, fill, true)
	if e.Boss {
		vector.StrokeCircle(screen, x, y, radius, r.colors.StrokeWidth, r.entity.UltimateColor, true)
	}
	r.drawHealthBar(screen, x, y-radius-6, e.Health, e.MaxHealth)
}

func (r *GridRenderer) drawHealthBar(screen *ebiten.Image, cx, y float32, value, maxValue int) {
	if maxValue <= 0 || value >= maxValue {
		return
	}
	width := float32(r.tileSize) * 0.7
	x := cx - width/2
	vector.DrawFilledRect(screen, x, y, width, 3, r.colors.BackgroundColor, false)
	vector.DrawFilledRect(screen, x, y, width*float32(value)/float32(maxValue), 3, r.entity.HealthBarColor, false)
}

func (r *GridRenderer) drawEffect(screen *ebiten.Image, e app.EffectView) {
	x, y := r.ToScreen(e.X, e.Y)
	c := Fade(e.Color, 1-e.Progress)
	if e.Shockwave {
		radius := float32(e.MaxRadius * r.tileSize * e.Progress)
		if radius > 0 {
			vector.StrokeCircle(screen, x, y, radius, 3, c, true)
		}
		return
	}
	vector.DrawFilledCircle(screen, x, y, float32(r.tileSize*0.4*(1-e.Progress*0.5)), c, true)
}
