package main

import (
	"sync"
	"time"

	"go-dungeon-defense/internal/audio"
	"go-dungeon-defense/internal/event"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SoundManager проигрывает звуковые сигналы событий симуляции.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		return nil
	}
	if err := speaker.Init(audio.SampleRate, audio.SampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

func (sm *SoundManager) OnEvent(e event.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	if s := audio.Cue(e); s != nil {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
}

// Cleanup stops all sounds and closes the device.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
