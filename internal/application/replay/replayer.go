package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/raincoat/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// SaveReplay writes replay data to a file
func SaveReplay(filename string, data ReplayData) error {
	if len(data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Next returns the input for the current frame and advances
func (r *Replayer) Next() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Input(), true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Level returns the level id the replay was recorded on
func (r *Replayer) Level() string {
	return r.data.Level
}

// Framerate returns the tick rate of the recording, defaulting to 60
func (r *Replayer) Framerate() int {
	if r.data.Framerate <= 0 {
		return 60
	}
	return r.data.Framerate
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}
