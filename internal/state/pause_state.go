// internal/state/pause_state.go
package state

import (
	"fmt"
	"image/color"

	"go-dungeon-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает симуляцию и рисует поверх предыдущего состояния.
type PauseState struct {
	sm            *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prev *GameState) *PauseState {
	return &PauseState{sm: sm, previousState: prev}
}

func (s *PauseState) Enter() {
	s.sm.Session.Game.Pause()
	s.previousState.pauseButton.SetPaused(true)
}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if s.previousState.pauseButton.IsClicked(x, y) {
			unpause = true
		}
	}
	if unpause {
		s.sm.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)
	face := s.sm.Session.Face
	pauseText := "PAUSED"
	bounds := text.BoundString(face, pauseText)
	text.Draw(screen, pauseText, face, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, color.White)

	// Отладочная строка: сид забега и время симуляции.
	g := s.sm.Session.Game
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("run %s  seed %d  t=%.1fs  FPS %.0f",
		g.RunID, g.Rng.Seed(), g.GameTime(), ebiten.ActualFPS()), 8, config.ScreenHeight-20)
}

func (s *PauseState) Exit() {
	s.sm.Session.Game.Resume()
	s.previousState.pauseButton.SetPaused(false)
}
