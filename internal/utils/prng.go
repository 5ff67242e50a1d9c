// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"

	"go-dungeon-defense/internal/defs"
)

// PRNGService — единственный источник случайности забега: генерация карты
// и составы волн. При одинаковом сиде последовательность воспроизводима.
type PRNGService struct {
	rng  *rand.Rand
	seed int64
}

// NewPRNGService seeds the service. Seed 0 picks one from the clock; Seed
// reports the value actually used so the run can be replayed.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

func (s *PRNGService) Seed() int64 {
	return s.seed
}

func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 удовлетворяет gridmap.Rand.
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// ChooseWeighted draws one enemy ID from a spawn table. Entries with a
// non-positive weight are never drawn; a table with no positive weight
// yields its first entry and an empty table yields "".
func (s *PRNGService) ChooseWeighted(table []defs.SpawnEntry) string {
	if len(table) == 0 {
		return ""
	}
	total := 0
	for _, e := range table {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total == 0 {
		return table[0].EnemyID
	}

	roll := s.Intn(total)
	for _, e := range table {
		if e.Weight <= 0 {
			continue
		}
		if roll < e.Weight {
			return e.EnemyID
		}
		roll -= e.Weight
	}
	return table[len(table)-1].EnemyID
}

// DrawN делает n независимых взвешенных выборов подряд. n <= 0 даёт пустой список.
func (s *PRNGService) DrawN(table []defs.SpawnEntry, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = s.ChooseWeighted(table)
	}
	return out
}
