package utils

import (
	"testing"

	"go-dungeon-defense/internal/defs"
)

func TestChooseWeightedDeterministic(t *testing.T) {
	table := []defs.SpawnEntry{{EnemyID: "A", Weight: 1}, {EnemyID: "B", Weight: 3}}
	a, b := NewPRNGService(7), NewPRNGService(7)
	counts := map[string]int{}
	for i := 0; i < 400; i++ {
		x, y := a.ChooseWeighted(table), b.ChooseWeighted(table)
		if x != y {
			t.Fatalf("draw %d differs for equal seeds: %s vs %s", i, x, y)
		}
		counts[x]++
	}
	if counts["B"] <= counts["A"] {
		t.Errorf("heavier entry should be drawn more often, got %v", counts)
	}
}

func TestChooseWeightedEdgeCases(t *testing.T) {
	s := NewPRNGService(1)
	if got := s.ChooseWeighted(nil); got != "" {
		t.Errorf("empty table should yield empty id, got %q", got)
	}
	if got := s.ChooseWeighted([]defs.SpawnEntry{{EnemyID: "Z", Weight: 0}}); got != "Z" {
		t.Errorf("zero total weight should fall back to first entry, got %q", got)
	}
}

func TestCircleOverlapsTile(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy float64
		want   bool
	}{
		{"centre", 3, 3, true},
		{"touching edge from inside radius", 3.7, 3, true},
		{"just outside", 3.85, 3, false},
		{"corner miss", 3.75, 3.75, false},
	}
	for _, tt := range tests {
		if got := CircleOverlapsTile(tt.cx, tt.cy, 0.3, 3, 3); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewPRNGServiceKeepsSeed(t *testing.T) {
	if s := NewPRNGService(99); s.Seed() != 99 {
		t.Errorf("expected seed 99, got %d", s.Seed())
	}
	if s := NewPRNGService(0); s.Seed() == 0 {
		t.Error("seed 0 should be replaced by a time-based seed")
	}
}

func TestToRoman(t *testing.T) {
	cases := map[int]string{0: "", -3: "", 1: "I", 4: "IV", 5: "V", 9: "IX", 14: "XIV", 20: "XX", 49: "XLIX"}
	for n, want := range cases {
		if got := ToRoman(n); got != want {
			t.Errorf("ToRoman(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestChooseWeightedSkipsZeroWeights(t *testing.T) {
	s := NewPRNGService(3)
	table := []defs.SpawnEntry{{EnemyID: "NEVER", Weight: 0}, {EnemyID: "ALWAYS", Weight: 2}}
	for _, id := range s.DrawN(table, 50) {
		if id != "ALWAYS" {
			t.Fatalf("zero-weight entry drawn: %s", id)
		}
	}
}

func TestDrawNLength(t *testing.T) {
	s := NewPRNGService(3)
	if got := len(s.DrawN([]defs.SpawnEntry{{EnemyID: "A", Weight: 1}}, 6)); got != 6 {
		t.Errorf("DrawN returned %d ids, want 6", got)
	}
}
