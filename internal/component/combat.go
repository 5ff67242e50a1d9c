package component

// Health — компонент здоровья. Инвариант: 0 <= Value <= Max.
type Health struct {
	Value int
	Max   int
}

// Fraction возвращает долю оставшегося здоровья.
func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Value) / float64(h.Max)
}
