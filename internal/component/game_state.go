package component

// RunPhase — фаза забега.
type RunPhase int

const (
	PhaseIdle RunPhase = iota // отсчёт до следующей волны
	PhaseInProgress
	PhaseWon
	PhaseLost
)

func (p RunPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in progress"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	}
	return "unknown"
}

// Terminal reports whether the run has ended.
func (p RunPhase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}
