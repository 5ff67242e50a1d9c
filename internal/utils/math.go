// internal/utils/math.go
package utils

import "math"

// Lerp выполняет стандартную линейную интерполяцию
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// Clamp ограничивает значение диапазоном [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance возвращает евклидово расстояние между двумя точками
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// CircleOverlapsTile checks a circle against the unit square centred on (tx, ty).
func CircleOverlapsTile(cx, cy, radius, tx, ty float64) bool {
	nx := Clamp(cx, tx-0.5, tx+0.5)
	ny := Clamp(cy, ty-0.5, ty+0.5)
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy < radius*radius
}
