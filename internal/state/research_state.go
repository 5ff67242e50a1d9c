// internal/state/research_state.go
package state

import (
	"fmt"
	"image/color"
	"log"

	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/progress"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// ResearchState — экран между забегами: покупка постоянных улучшений.
type ResearchState struct {
	sm      *StateMachine
	next    *GameState
	keys    []string
	message string
}

func NewResearchState(sm *StateMachine, next *GameState) *ResearchState {
	return &ResearchState{sm: sm, next: next, keys: sm.Session.Game.Library().UpgradeKeys()}
}

func (m *ResearchState) Enter() {}

func (m *ResearchState) Update(deltaTime float64) {
	g := m.sm.Session.Game
	for i, key := range digitKeys {
		if i >= len(m.keys) || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if err := g.PurchaseResearch(m.keys[i]); err != nil {
			m.message = err.Error()
		} else {
			m.message = "purchased " + g.Library().Upgrades[m.keys[i]].Name
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := g.Reset(); err != nil {
			log.Printf("ResearchState: failed to start a new run: %v", err)
			m.message = err.Error()
			return
		}
		m.sm.SetState(m.next)
	}
}

func (m *ResearchState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	g := m.sm.Session.Game
	face := m.sm.Session.Face
	state := g.Progress

	y := 80
	header := fmt.Sprintf("Research: %d   Rank: %d   Wins: %d   Losses: %d   Best wave: %d",
		state.Research, progress.RankFor(state.Wins), state.Wins, state.Losses, state.BestWave)
	text.Draw(screen, header, face, 80, y, color.White)
	y += 2 * config.HUDLineHeight

	for i, key := range m.keys {
		def := g.Library().Upgrades[key]
		level := state.Level(key)
		price := "max"
		if cost, err := state.NextCost(g.Library(), key); err == nil {
			price = fmt.Sprintf("%d", cost)
		}
		line := fmt.Sprintf("%d  %-18s %d/%d   cost %s", i+1, def.Name, level, def.MaxLevel, price)
		text.Draw(screen, line, face, 80, y, config.TextLightColor)
		y += config.HUDLineHeight
	}

	y += config.HUDLineHeight
	if m.message != "" {
		text.Draw(screen, m.message, face, 80, y, config.GoldTextColor)
		y += config.HUDLineHeight
	}
	text.Draw(screen, "press Enter to start the next run", face, 80, y, color.White)
}

func (m *ResearchState) Exit() {}
