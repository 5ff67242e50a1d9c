// internal/state/state.go
package state

import (
	"go-dungeon-defense/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

// State — интерфейс для всех состояний
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// Session — общие для всех состояний ресурсы: симуляция и шрифт.
type Session struct {
	Game *app.Game
	Face font.Face
}

// StateMachine — структура для управления состояниями
type StateMachine struct {
	current State
	Session *Session
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine(session *Session) *StateMachine {
	return &StateMachine{Session: session}
}

// SetState устанавливает новое состояние
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit() // Выход из текущего состояния, если оно есть
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Current возвращает активное состояние.
func (sm *StateMachine) Current() State {
	return sm.current
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
