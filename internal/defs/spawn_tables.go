// internal/defs/spawn_tables.go
package defs

import "sort"

// SpawnEntry представляет одну запись в таблице появления врагов.
// EnemyID - это ID врага, а Weight - его относительный шанс появления.
type SpawnEntry struct {
	EnemyID string `json:"enemy_id"`
	Weight  int    `json:"weight"`
}

// SpawnTable returns the archetypes eligible for a regular wave n, sorted by ID
// so that weighted draws are reproducible for a fixed seed.
func (l *Library) SpawnTable(n int) []SpawnEntry {
	var entries []SpawnEntry
	for id, def := range l.Enemies {
		if def.Boss || def.SpawnWeight <= 0 || def.MinWave > n {
			continue
		}
		entries = append(entries, SpawnEntry{EnemyID: id, Weight: def.SpawnWeight})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EnemyID < entries[j].EnemyID })
	return entries
}
