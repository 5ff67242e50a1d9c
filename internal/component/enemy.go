package component

// EnemyState — состояние врага. Removed-состояния терминальны и взаимоисключающи.
type EnemyState int

const (
	EnemyAlive EnemyState = iota
	EnemyDefeated
	EnemyEscaped
)

func (s EnemyState) String() string {
	switch s {
	case EnemyAlive:
		return "alive"
	case EnemyDefeated:
		return "defeated"
	case EnemyEscaped:
		return "escaped"
	}
	return "unknown"
}

// Enemy представляет вражескую сущность.
type Enemy struct {
	DefID         string // ID из библиотеки врагов
	State         EnemyState
	Boss          bool
	Bounty        int
	LifeCost      int
	TrampleDamage int
	Wave          int // номер волны, в которой враг появился
}

// Alive reports whether the enemy still takes part in the simulation.
func (e *Enemy) Alive() bool {
	return e.State == EnemyAlive
}
