package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave defines oscillator wave shapes
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Note is one tone of a cue, started Delay after the cue fires.
type Note struct {
	Delay    time.Duration
	Duration time.Duration
	Freq     float64
	Wave     Wave
	Gain     float64 // fraction of the master volume
}

// end is the offset at which the note falls silent.
func (n Note) end() time.Duration {
	return n.Delay + n.Duration
}

// tone is a decaying oscillator. The gain falls exponentially to 1% over
// the note length.
type tone struct {
	freq  float64
	wave  Wave
	gain  float64
	decay float64
	phase float64
	pos   int
	total int
	rate  beep.SampleRate
	seed  uint32
}

func newTone(n Note, volume float64, rate beep.SampleRate) *tone {
	total := rate.N(n.Duration)
	decay := 0.0
	if total > 0 {
		decay = math.Log(0.01) / float64(total)
	}
	return &tone{
		freq:  n.Freq,
		wave:  n.Wave,
		gain:  volume * n.Gain,
		decay: decay,
		total: total,
		rate:  rate,
		seed:  uint32(n.Freq) | 1,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (t.phase - 0.5)
		case WaveNoise:
			t.seed = t.seed*1664525 + 1013904223
			val = float64(t.seed)/float64(math.MaxUint32)*2 - 1
		}

		val *= t.gain * math.Exp(t.decay*float64(t.pos))
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// render builds one finite streamer per note. The mixer plays them side
// by side and drops each when it drains.
func render(notes []Note, volume float64, rate beep.SampleRate) []beep.Streamer {
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		t := newTone(n, volume, rate)
		if n.Delay > 0 {
			streamers = append(streamers, beep.Seq(beep.Silence(rate.N(n.Delay)), t))
		} else {
			streamers = append(streamers, t)
		}
	}
	return streamers
}
