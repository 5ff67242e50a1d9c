package component

// Economy — состояние экономики текущего забега.
type Economy struct {
	Currency   int     // можно потратить
	Earned     int     // всего заработано за забег
	Lives      int     // запас жизней защитника
	Kills      int
	Escaped    int
	Combo      int
	ComboTimer float64 // перезапускается при каждом убийстве
	BestCombo  int
}

// CanAfford reports whether cost can be paid.
func (e *Economy) CanAfford(cost int) bool {
	return cost >= 0 && e.Currency >= cost
}

// Spend deducts cost. It reports false and changes nothing when funds are short.
func (e *Economy) Spend(cost int) bool {
	if !e.CanAfford(cost) {
		return false
	}
	e.Currency -= cost
	return true
}

// Earn adds income and counts it towards the run total.
func (e *Economy) Earn(amount int) {
	if amount <= 0 {
		return
	}
	e.Currency += amount
	e.Earned += amount
}
