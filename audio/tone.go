package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
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
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release to a stream of known length
type fade struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newFade(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)

	releaseStart := f.total - f.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.position < f.attack {
			vol = float64(f.position) / float64(f.attack)
		}
		if f.position >= releaseStart && f.release > 0 {
			vol = math.Max(0, float64(f.total-f.position)/float64(f.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// note is one tone of a cue
type note struct {
	freq     float64
	duration time.Duration
}

// melody renders notes back to back at the given linear volume
func melody(rate beep.SampleRate, wave WaveType, vol float64, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := newOscillator(n.freq, n.duration, wave, rate)
		parts = append(parts, newFade(osc, n.duration, 5*time.Millisecond, n.duration/2, rate))
	}
	return withVolume(beep.Seq(parts...), vol)
}

// math.Log2(0) is -Inf, so zero volume is expressed as silence
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
