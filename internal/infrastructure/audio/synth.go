// Package audio synthesizes the game's sound cues.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/younwookim/raincoat/internal/application/system"
)

const (
	sampleRate    = beep.SampleRate(44100)
	defaultVolume = 0.3
)

const ms = time.Millisecond

// cueNotes is the tone table for every cue.
var cueNotes = map[system.Cue][]Note{
	system.CueJump: {
		{Duration: 100 * ms, Freq: 200, Wave: WaveSquare, Gain: 0.4},
		{Delay: 50 * ms, Duration: 100 * ms, Freq: 300, Wave: WaveSquare, Gain: 0.3},
	},
	system.CueLand: {
		{Duration: 50 * ms, Wave: WaveNoise, Gain: 0.3},
	},
	system.CueHookFire: {
		{Duration: 100 * ms, Freq: 150, Wave: WaveSaw, Gain: 0.4},
		{Duration: 50 * ms, Wave: WaveNoise, Gain: 0.2},
	},
	system.CueHookAttach: {
		{Duration: 100 * ms, Freq: 400, Wave: WaveSquare, Gain: 0.4},
		{Duration: 150 * ms, Freq: 500, Wave: WaveSquare, Gain: 0.3},
	},
	system.CueHookRelease: {
		{Duration: 100 * ms, Freq: 300, Wave: WaveSquare, Gain: 0.3},
		{Delay: 50 * ms, Duration: 100 * ms, Freq: 200, Wave: WaveSquare, Gain: 0.2},
	},
	system.CueHurt: {
		{Duration: 100 * ms, Freq: 200, Wave: WaveSaw, Gain: 0.5},
		{Delay: 100 * ms, Duration: 150 * ms, Freq: 150, Wave: WaveSaw, Gain: 0.4},
	},
	system.CueDeath: {
		{Duration: 100 * ms, Freq: 400, Wave: WaveSquare, Gain: 0.5},
		{Delay: 100 * ms, Duration: 100 * ms, Freq: 300, Wave: WaveSquare, Gain: 0.4},
		{Delay: 200 * ms, Duration: 100 * ms, Freq: 200, Wave: WaveSquare, Gain: 0.3},
		{Delay: 300 * ms, Duration: 200 * ms, Freq: 100, Wave: WaveSquare, Gain: 0.2},
	},
	system.CueStomp: {
		{Duration: 100 * ms, Freq: 300, Wave: WaveSquare, Gain: 0.4},
		{Duration: 50 * ms, Wave: WaveNoise, Gain: 0.3},
	},
	system.CueCheckpoint: {
		{Duration: 100 * ms, Freq: 500, Wave: WaveSine, Gain: 0.5},
		{Delay: 100 * ms, Duration: 100 * ms, Freq: 700, Wave: WaveSine, Gain: 0.5},
		{Delay: 200 * ms, Duration: 200 * ms, Freq: 600, Wave: WaveSine, Gain: 0.4},
	},
	system.CueCollect: {
		{Duration: 100 * ms, Freq: 800, Wave: WaveSine, Gain: 0.5},
		{Delay: 50 * ms, Duration: 150 * ms, Freq: 1000, Wave: WaveSine, Gain: 0.4},
	},
	system.CueSecret: {
		{Duration: 100 * ms, Freq: 600, Wave: WaveSine, Gain: 0.5},
		{Delay: 100 * ms, Duration: 100 * ms, Freq: 800, Wave: WaveSine, Gain: 0.5},
		{Delay: 200 * ms, Duration: 200 * ms, Freq: 1000, Wave: WaveSine, Gain: 0.5},
	},
	system.CueLevelComplete: {
		{Duration: 200 * ms, Freq: 523, Wave: WaveSine, Gain: 0.5},
		{Delay: 150 * ms, Duration: 200 * ms, Freq: 659, Wave: WaveSine, Gain: 0.5},
		{Delay: 300 * ms, Duration: 200 * ms, Freq: 784, Wave: WaveSine, Gain: 0.5},
		{Delay: 450 * ms, Duration: 200 * ms, Freq: 1047, Wave: WaveSine, Gain: 0.5},
	},
}

// Synth plays cues through the speaker. It implements system.CueSink.
// Until Initialize succeeds, and while muted, Play does nothing.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	initialized bool
}

// NewSynth creates a synth at the default volume
func NewSynth() *Synth {
	return &Synth{
		mixer:   &beep.Mixer{},
		volume:  defaultVolume,
		enabled: true,
	}
}

// Initialize opens the speaker
func (s *Synth) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*ms)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play implements system.CueSink
func (s *Synth) Play(cue system.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || !s.enabled {
		return
	}
	streamers := render(cueNotes[cue], s.volume, sampleRate)
	if len(streamers) == 0 {
		return
	}

	speaker.Lock()
	s.mixer.Add(streamers...)
	speaker.Unlock()
}

// Toggle mutes or unmutes and returns whether sound is now on.
func (s *Synth) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = !s.enabled
	return s.enabled
}

// SetVolume sets the master volume, clamped to [0, 1].
func (s *Synth) SetVolume(vol float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = max(0, min(1, vol))
}

// Close stops every playing cue.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}
