package playing

import (
	"fmt"
	"time"

	"github.com/younwookim/raincoat/internal/application/replay"
	"github.com/younwookim/raincoat/internal/application/system"
)

// Recorder handles input recording for replay
type Recorder struct {
	data      replay.ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for a level
func NewRecorder(level string, framerate int) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:   replay.FormatVersion,
			Level:     level,
			Framerate: framerate,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]replay.FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's input
func (r *Recorder) RecordFrame(input system.InputState) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, replay.NewFrame(r.frame, input))
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	return replay.SaveReplay(filename, r.data)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the replay data recorded so far
func (r *Recorder) Data() replay.ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
