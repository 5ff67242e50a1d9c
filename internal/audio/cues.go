// internal/audio/cues.go
package audio

import (
	"math"
	"time"

	"go-dungeon-defense/internal/event"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const SampleRate = beep.SampleRate(44100)

type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// oscillator — тон фиксированной длины.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
}

func NewOscillator(freq float64, duration time.Duration, wave WaveType) beep.Streamer {
	return &oscillator{freq: freq, duration: SampleRate.N(duration), wave: wave}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(SampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func note(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	return NewOscillator(freq, d, wave)
}

// Cue returns the sound for a simulation event, or nil when the event is silent.
func Cue(e event.Event) beep.Streamer {
	switch e.Type {
	case event.EnemyKilled:
		data, _ := e.Data.(event.EnemyData)
		if data.Boss {
			return newVolume(beep.Seq(
				note(523, 90*time.Millisecond, WaveSquare),
				note(659, 90*time.Millisecond, WaveSquare),
				note(784, 180*time.Millisecond, WaveSquare),
			), 0.3)
		}
		sine, err := generators.SineTone(SampleRate, 880)
		if err != nil {
			return nil
		}
		return newVolume(beep.Take(SampleRate.N(40*time.Millisecond), sine), 0.25)
	case event.EnemyEscaped:
		return newVolume(note(140, 150*time.Millisecond, WaveSquare), 0.35)
	case event.StructurePlaced, event.StructureUpgraded:
		return newVolume(note(1200, 20*time.Millisecond, WaveSine), 0.2)
	case event.ActionRejected:
		return newVolume(note(120, 80*time.Millisecond, WaveSquare), 0.2)
	case event.WaveStarted:
		return newVolume(beep.Seq(
			note(440, 100*time.Millisecond, WaveSine),
			note(660, 140*time.Millisecond, WaveSine),
		), 0.3)
	case event.RunEnded:
		data, _ := e.Data.(event.RunData)
		freqs := []float64{392, 330, 262}
		if data.Won {
			freqs = []float64{523, 659, 784, 1047}
		}
		notes := make([]beep.Streamer, len(freqs))
		for i, f := range freqs {
			notes[i] = note(f, 160*time.Millisecond, WaveSine)
		}
		return newVolume(beep.Seq(notes...), 0.35)
	}
	return nil
}
