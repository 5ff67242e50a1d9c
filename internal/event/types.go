// internal/event/types.go
package event

import (
	"image/color"

	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/pkg/gridmap"
)

const (
	EnemySpawned       EventType = "EnemySpawned"
	EnemyKilled        EventType = "EnemyKilled"  // Враг уничтожен
	EnemyEscaped       EventType = "EnemyEscaped" // Враг дошёл до выхода
	StructurePlaced    EventType = "StructurePlaced"
	StructureUpgraded  EventType = "StructureUpgraded"
	StructureSold      EventType = "StructureSold"
	StructureDestroyed EventType = "StructureDestroyed"
	WaveStarted        EventType = "WaveStarted"
	WaveEnded          EventType = "WaveEnded" // Волна закончилась
	RunEnded           EventType = "RunEnded"
	EffectSpawned      EventType = "EffectSpawned"
	CombatText         EventType = "CombatText"
	ActionRejected     EventType = "ActionRejected"
	IncomeGenerated    EventType = "IncomeGenerated"
)

// EnemyData сопровождает EnemySpawned, EnemyKilled и EnemyEscaped.
type EnemyData struct {
	ID       types.EntityID
	DefID    string
	X, Y     float64
	Bounty   int // для EnemyKilled: итоговая награда с учётом комбо
	LifeCost int // для EnemyEscaped
	Boss     bool
}

// StructureData сопровождает события постройки, улучшения, продажи и разрушения.
type StructureData struct {
	ID     types.EntityID
	DefID  string
	Tile   gridmap.Point
	Level  int
	Amount int // стоимость или возврат
}

// WaveData сопровождает WaveStarted и WaveEnded.
type WaveData struct {
	Number int
	Total  int
	Boss   bool
	Bonus  int
}

// RunData сопровождает RunEnded.
type RunData struct {
	RunID         string
	Won           bool
	WavesSurvived int
	Kills         int
	Research      int
}

// EffectData — одноразовый косметический эффект для рендера частиц.
type EffectData struct {
	X, Y      float64
	Color     color.RGBA
	Shockwave bool
}

// TextData — всплывающее число урона или дохода.
type TextData struct {
	X, Y  float64
	Value string
	Color color.RGBA
}

// RejectionData — сигнал "невозможно выполнить" для интерфейса.
type RejectionData struct {
	Action string
	Reason error
}
