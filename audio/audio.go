// Package audio plays short synthesized cues for game events. There are
// no sample assets; every sound is generated. If the speaker cannot be
// initialized the player silently disables itself — sound is a garnish,
// never a failure mode.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type Player struct {
	enabled bool
}

// NewPlayer initializes the speaker. When enabled is false, or when the
// audio backend is unavailable, the returned player is a no-op.
func NewPlayer(enabled bool) *Player {
	if !enabled {
		return &Player{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Player{}
	}
	return &Player{enabled: true}
}

// LineClear plays a blip whose pitch rises with the number of rows
// cleared, so a quad sounds like an event.
func (p *Player) LineClear(rows int) {
	if !p.enabled {
		return
	}
	freq := 440.0 * math.Pow(1.25, float64(rows-1))
	p.play(newTone(freq, waveSquare), 140*time.Millisecond)
}

// Lock plays a dull thud when a piece commits without clearing anything.
func (p *Player) Lock() {
	if !p.enabled {
		return
	}
	p.play(newTone(110, waveSine), 60*time.Millisecond)
}

// GameOver plays a downward sweep.
func (p *Player) GameOver() {
	if !p.enabled {
		return
	}
	p.play(newSweep(440, 80, 700*time.Millisecond), 700*time.Millisecond)
}

func (p *Player) play(s beep.Streamer, d time.Duration) {
	speaker.Play(beep.Take(sampleRate.N(d), s))
}

const (
	waveSine = iota
	waveSquare
)

// tone is an infinite fixed-frequency oscillator with a short linear
// fade-out applied by position so the cue ends without a click.
type tone struct {
	freq  float64
	wave  int
	phase float64
}

func newTone(freq float64, wave int) *tone {
	return &tone{freq: freq, wave: wave}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var v float64
		switch t.wave {
		case waveSquare:
			if t.phase < 0.5 {
				v = 0.25
			} else {
				v = -0.25
			}
		default:
			v = 0.4 * math.Sin(2*math.Pi*t.phase)
		}
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// sweep glides from one frequency to another over its duration.
type sweep struct {
	from, to float64
	total    int
	pos      int
	phase    float64
}

func newSweep(from, to float64, d time.Duration) *sweep {
	return &sweep{from: from, to: to, total: sampleRate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		frac := float64(s.pos) / float64(s.total)
		if frac > 1 {
			frac = 1
		}
		freq := s.from + (s.to-s.from)*frac
		v := 0.35 * math.Sin(2*math.Pi*s.phase) * (1 - frac)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
