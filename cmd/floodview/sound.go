package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	toneDuration = 60 * time.Millisecond
	baseTone     = 440.0
)

// Sound plays a short tone when a fill completes. A zero Sound is silent.
type Sound struct {
	ready bool
}

// NewSound opens the speaker when enabled. Audio is optional: failures are
// logged and a silent Sound is returned.
func NewSound(enabled bool) *Sound {
	if !enabled {
		return &Sound{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio initialization failed: %v", err)
		return &Sound{}
	}
	return &Sound{ready: true}
}

// toneFor scales the pitch with fill size, up to three times baseTone
func toneFor(filled int) float64 {
	return baseTone * (1 + min(float64(filled)/4096, 2))
}

// Completion signals a finished fill; larger fills sound higher
func (s *Sound) Completion(filled int) {
	if s == nil || !s.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, toneFor(filled))
	if err != nil {
		log.Printf("tone: %v", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneDuration), sine))
}

func (s *Sound) Close() {
	if s != nil && s.ready {
		speaker.Close()
		s.ready = false
	}
}
