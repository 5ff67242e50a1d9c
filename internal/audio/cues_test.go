package audio

import (
	"testing"
	"time"

	"go-dungeon-defense/internal/event"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	want := SampleRate.N(100 * time.Millisecond)
	if got := drain(NewOscillator(440, 100*time.Millisecond, WaveSquare)); got != want {
		t.Errorf("oscillator produced %d samples, want %d", got, want)
	}
}

func TestOscillatorStaysInRange(t *testing.T) {
	buf := make([][2]float64, 256)
	n, _ := NewOscillator(440, 10*time.Millisecond, WaveSine).Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][0] != buf[i][1] {
			t.Fatalf("sample %d = %v", i, buf[i])
		}
	}
}

func TestCueSelection(t *testing.T) {
	loud := []event.Event{
		{Type: event.EnemyKilled, Data: event.EnemyData{}},
		{Type: event.EnemyKilled, Data: event.EnemyData{Boss: true}},
		{Type: event.EnemyEscaped, Data: event.EnemyData{}},
		{Type: event.WaveStarted, Data: event.WaveData{Number: 1}},
		{Type: event.RunEnded, Data: event.RunData{Won: true}},
		{Type: event.RunEnded, Data: event.RunData{}},
	}
	for _, e := range loud {
		if s := Cue(e); s == nil || drain(s) == 0 {
			t.Errorf("%s should make a sound", e.Type)
		}
	}
	if Cue(event.Event{Type: event.CombatText}) != nil {
		t.Error("combat text should be silent")
	}
}

func TestKillBlipLength(t *testing.T) {
	s := Cue(event.Event{Type: event.EnemyKilled, Data: event.EnemyData{}})
	if got, want := drain(s), SampleRate.N(40*time.Millisecond); got != want {
		t.Errorf("kill blip is %d samples, want %d", got, want)
	}
}
