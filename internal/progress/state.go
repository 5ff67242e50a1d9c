// internal/progress/state.go
package progress

import (
	"errors"
	"fmt"

	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
)

var (
	ErrUnknownUpgrade       = errors.New("unknown research upgrade")
	ErrUpgradeMaxed         = errors.New("research upgrade already at max level")
	ErrInsufficientResearch = errors.New("not enough research points")
)

// State — прогресс игрока, переживающий перезапуски процесса.
type State struct {
	Version       int            `json:"version"`
	Research      int            `json:"research"`
	Upgrades      map[string]int `json:"upgrades"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	LifetimeKills int            `json:"lifetime_kills"`
	BestWave      int            `json:"best_wave"`
	LastRunID     string         `json:"last_run_id,omitempty"`
	// Rank is derived from Wins; it is stored for readers of the save file
	// and recomputed on load.
	Rank int `json:"rank"`
}

const stateVersion = 1

// NewState returns a freshly initialised progression.
func NewState() *State {
	return &State{
		Version:  stateVersion,
		Upgrades: make(map[string]int),
	}
}

// RunResult summarises a finished run.
type RunResult struct {
	RunID         string
	Won           bool
	WavesSurvived int
	Kills         int
}

// RankFor derives the rank from the lifetime number of victories.
func RankFor(wins int) int {
	rank := wins / config.WinsPerRank
	if rank > config.MaxRank {
		rank = config.MaxRank
	}
	if rank < 0 {
		rank = 0
	}
	return rank
}

// ResearchAward is the research currency granted for a finished run.
func ResearchAward(r RunResult) int {
	award := r.WavesSurvived*config.ResearchPerWave + r.Kills/config.ResearchKillDivisor
	if r.Won {
		award += config.ResearchVictoryBonus
	}
	return award
}

// Level returns the purchased level of an upgrade.
func (s *State) Level(key string) int {
	return s.Upgrades[key]
}

// RecordRun folds a finished run into the lifetime counters and returns the research awarded.
func (s *State) RecordRun(r RunResult) int {
	award := ResearchAward(r)
	s.Research += award
	if r.Won {
		s.Wins++
	} else {
		s.Losses++
	}
	s.LifetimeKills += r.Kills
	if r.WavesSurvived > s.BestWave {
		s.BestWave = r.WavesSurvived
	}
	s.LastRunID = r.RunID
	s.Rank = RankFor(s.Wins)
	return award
}

// NextCost returns the research price of the next level of key.
func (s *State) NextCost(lib *defs.Library, key string) (int, error) {
	def, ok := lib.Upgrades[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUpgrade, key)
	}
	level := s.Level(key)
	if level >= def.MaxLevel {
		return 0, fmt.Errorf("%w: %s", ErrUpgradeMaxed, key)
	}
	return def.CostForLevel(level + 1), nil
}

// Purchase buys the next level of key. On error the state is unchanged.
func (s *State) Purchase(lib *defs.Library, key string) error {
	cost, err := s.NextCost(lib, key)
	if err != nil {
		return err
	}
	if s.Research < cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientResearch, key, cost, s.Research)
	}
	s.Research -= cost
	s.Upgrades[key]++
	return nil
}

// normalize repairs values a hand-edited or older save may carry.
func (s *State) normalize(lib *defs.Library) {
	if s.Upgrades == nil {
		s.Upgrades = make(map[string]int)
	}
	if s.Research < 0 {
		s.Research = 0
	}
	for key, level := range s.Upgrades {
		def, ok := lib.Upgrades[key]
		switch {
		case !ok || level <= 0:
			delete(s.Upgrades, key)
		case level > def.MaxLevel:
			s.Upgrades[key] = def.MaxLevel
		}
	}
	s.Version = stateVersion
	s.Rank = RankFor(s.Wins)
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Upgrades = make(map[string]int, len(s.Upgrades))
	for k, v := range s.Upgrades {
		c.Upgrades[k] = v
	}
	return &c
}
