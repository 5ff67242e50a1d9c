// internal/termui/renderer.go
package termui

import (
	"fmt"
	"image/color"
	"math"

	"go-dungeon-defense/internal/app"
	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/utils"
	"go-dungeon-defense/pkg/gridmap"

	"github.com/gdamore/tcell/v2"
)

// Положение карты на экране: клетка занимает две колонки.
const (
	MapOriginX = 1
	MapOriginY = 2
	CellWidth  = 2
)

// Renderer рисует снимок симуляции в терминале.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// CellOf returns the screen cell of a tile.
func CellOf(p gridmap.Point) (int, int) {
	return MapOriginX + p.X*CellWidth, MapOriginY + p.Y
}

func (r *Renderer) put(x, y int, ch rune, style tcell.Style) {
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) print(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.put(x, y, ch, style)
		x++
	}
}

// Draw renders a full frame; the caller shows it.
func (r *Renderer) Draw(snap app.Snapshot, hud app.HUD, ctl *Controller) {
	r.screen.Clear()
	grid := snap.Grid

	onPath := make(map[gridmap.Point]bool, len(snap.Path))
	for _, p := range snap.Path {
		onPath[p] = true
	}
	wall := styleFor(config.WallColor)
	path := styleFor(config.PathColor)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := gridmap.Point{X: x, Y: y}
			cx, cy := CellOf(p)
			switch {
			case p == grid.Entry:
				r.put(cx, cy, '>', styleFor(config.EntryColor))
			case p == grid.Exit:
				r.put(cx, cy, '<', styleFor(config.ExitColor))
			case grid.At(p) == gridmap.Wall:
				r.put(cx, cy, '#', wall)
				r.put(cx+1, cy, '#', wall)
			case onPath[p]:
				r.put(cx, cy, '.', path)
			}
		}
	}

	for _, s := range snap.Structures {
		cx, cy := CellOf(s.Tile)
		style := styleFor(s.Color)
		if s.Ultimate {
			style = style.Bold(true).Underline(true)
		}
		if s.Flash {
			style = style.Reverse(true)
		}
		r.put(cx, cy, glyph(s.Glyph), style)
		if s.Level > 1 {
			r.put(cx+1, cy, rune('0'+s.Level), styleFor(config.TextLightColor))
		}
	}
	for _, p := range snap.Projectiles {
		cx, cy := CellOf(nearest(p.X, p.Y))
		r.put(cx+1, cy, '•', styleFor(p.Color))
	}
	for _, e := range snap.Enemies {
		cx, cy := CellOf(nearest(e.X, e.Y))
		style := styleFor(e.Color)
		switch {
		case e.Flash:
			style = style.Reverse(true)
		case e.Slowed:
			style = styleFor(config.SlowedColor)
		}
		r.put(cx, cy, glyph(e.Glyph), style)
	}

	if grid.Contains(ctl.Cursor) {
		cx, cy := CellOf(ctl.Cursor)
		ch, _, style, _ := r.screen.GetContent(cx, cy)
		r.put(cx, cy, ch, style.Reverse(true))
	}

	r.drawHUD(hud, ctl, grid.Height)
}

func (r *Renderer) drawHUD(hud app.HUD, ctl *Controller, mapHeight int) {
	light := styleFor(config.TextLightColor)
	wave := "-"
	if hud.Wave > 0 {
		wave = utils.ToRoman(hud.Wave)
	}
	line := fmt.Sprintf("Gold %d  Lives %d  Wave %s/%d  Kills %d  Combo x%d  Rank %d  Research %d  x%.0f",
		hud.Currency, hud.Lives, wave, hud.TotalWaves, hud.Kills, hud.Combo, hud.Rank, hud.Research, hud.Speed)
	r.print(0, 0, line, light)

	status := ""
	switch hud.Phase {
	case component.PhaseIdle:
		status = fmt.Sprintf("next wave in %.0fs", hud.Countdown)
	case component.PhaseInProgress:
		status = "wave in progress"
		if hud.BossWave {
			status = "BOSS WAVE"
		}
	case component.PhaseWon:
		status = fmt.Sprintf("VICTORY  research +%d", hud.LastAward)
	case component.PhaseLost:
		status = fmt.Sprintf("DEFEAT  research +%d", hud.LastAward)
	}
	if hud.Paused {
		status += "  [paused]"
	}
	r.print(0, 1, status, styleFor(config.GoldTextColor))

	y := MapOriginY + mapHeight + 1
	if hud.Phase.Terminal() {
		for i, row := range ctl.ResearchRows() {
			r.print(0, y+i, row, light)
		}
		r.print(0, y+len(ctl.ResearchRows())+1, "digits: buy research  enter: next run  q: quit", light)
	} else {
		r.print(0, y, "build: "+ctl.BuildRow(), light)
		if sel := hud.Selected; sel != nil {
			info := fmt.Sprintf("%s lvl %d  hp %d/%d  dmg %d  upgrade %d  sell %d",
				sel.Name, sel.Level, sel.Health, sel.MaxHealth, sel.Stats.Damage, sel.UpgradeCost, sel.SellValue)
			if sel.Ultimate {
				info += "  ULTIMATE"
			}
			r.print(0, y+1, info, light)
		}
		r.print(0, y+3, "arrows: move  1-9: pick  enter: build  u: upgrade  s: sell  space: wave  p: pause  f: speed  r: restart  q: quit", light)
	}
	if ctl.Notice != "" {
		r.print(0, y+2, ctl.Notice, styleFor(config.DamageTextColor))
	}
	if hud.SaveFailed {
		r.print(0, y+5, "progress could not be saved", styleFor(config.DamageTextColor))
	}
}

func nearest(x, y float64) gridmap.Point {
	return gridmap.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

func glyph(ch rune) rune {
	if ch == 0 {
		return '?'
	}
	return ch
}
