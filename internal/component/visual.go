package component

import "image/color"

// DamageFlash указывает, что сущность должна быть отрисована цветом урона.
type DamageFlash struct {
	Timer float64 // Сколько времени эффекту осталось
}

// Text — всплывающая надпись (урон, доход).
type Text struct {
	Value    string
	Color    color.RGBA
	Timer    float64
	Duration float64
}

// Effect — одноразовый косметический эффект (смерть врага, импульс ловушки).
type Effect struct {
	Color     color.RGBA
	Shockwave bool
	MaxRadius float64
	Timer     float64
	Duration  float64
}

// Progress returns how far the effect has played, in [0, 1].
func (e *Effect) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	p := e.Timer / e.Duration
	if p > 1 {
		return 1
	}
	return p
}
