// Package audio plays short feedback cues through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.4
)

// Cue identifies a feedback sound
type Cue uint8

const (
	CueGoal Cue = iota
	CueSaved
	CueLoaded
)

func (c Cue) String() string {
	switch c {
	case CueGoal:
		return "goal"
	case CueSaved:
		return "saved"
	case CueLoaded:
		return "loaded"
	}
	return fmt.Sprintf("Cue(%d)", uint8(c))
}

// Streamer builds a fresh streamer for c; streamers are single use
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueGoal:
		// C6 E6 G6 arpeggio
		return melody(rate, WaveSquare, volume,
			note{1046.50, 90 * time.Millisecond},
			note{1318.51, 90 * time.Millisecond},
			note{1567.98, 180 * time.Millisecond},
		)
	case CueSaved:
		return melody(rate, WaveSine, volume, note{880, 60 * time.Millisecond})
	case CueLoaded:
		return melody(rate, WaveSine, volume,
			note{660, 50 * time.Millisecond},
			note{880, 70 * time.Millisecond},
		)
	}
	return nil
}

// Player owns the speaker. A nil or disabled Player ignores every cue.
type Player struct {
	mu      sync.Mutex
	enabled bool
	closed  bool
}

// NewPlayer initializes the speaker when enabled. Initialization failure
// is returned so the caller can log it and continue silent.
func NewPlayer(enabled bool) (*Player, error) {
	if !enabled {
		return &Player{}, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Player{}, fmt.Errorf("audio: speaker init: %w", err)
	}
	return &Player{enabled: true}, nil
}

// Play queues c without blocking
func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.closed {
		return
	}
	if s := c.Streamer(sampleRate); s != nil {
		speaker.Play(s)
	}
}

func (p *Player) Enabled() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled && !p.closed
}

func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled && !p.closed {
		speaker.Clear()
		speaker.Close()
	}
	p.closed = true
}
