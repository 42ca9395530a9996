package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/raincoat/internal/application/system"
)

func idleReplay(frames int) ReplayData {
	data := ReplayData{
		Version:   FormatVersion,
		Level:     "test",
		Framerate: 60,
		Frames:    make([]FrameInput, frames),
	}
	for i := range data.Frames {
		data.Frames[i] = FrameInput{F: i}
	}
	return data
}

func TestFrameInput_RoundTrip(t *testing.T) {
	in := system.InputState{
		Left:           true,
		Right:          true,
		Up:             true,
		Down:           true,
		Jump:           true,
		JumpPressed:    true,
		FirePressed:    true,
		CancelPressed:  true,
		HookPressed:    true,
		ReleasePressed: true,
		RestartPressed: true,
		PausePressed:   true,
		AimX:           123.25,
		AimY:           -45.5,
		AimActive:      true,
	}

	frame := NewFrame(7, in)

	assert.Equal(t, 7, frame.F)
	assert.Equal(t, in, frame.Input())
	assert.Equal(t, system.InputState{}, NewFrame(0, system.InputState{}).Input())
}

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Version: FormatVersion,
		Level:   "test",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, J: true, JP: true},
			{F: 2, FP: true, AX: 110, AY: 95, AA: true},
		},
	}

	replayer := NewReplayer(data)

	input, ok := replayer.Next()
	require.True(t, ok)
	assert.True(t, input.Left)
	assert.False(t, input.Right)

	input, ok = replayer.Next()
	require.True(t, ok)
	assert.True(t, input.Right)
	assert.True(t, input.JumpPressed)

	input, ok = replayer.Next()
	require.True(t, ok)
	assert.True(t, input.FirePressed)
	assert.Equal(t, 110.0, input.AimX)
	assert.True(t, input.AimActive)

	_, ok = replayer.Next()
	assert.False(t, ok)
}

func TestReplayer_Counters(t *testing.T) {
	replayer := NewReplayer(idleReplay(5))

	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())
	assert.Equal(t, "test", replayer.Level())
	assert.Equal(t, 60, replayer.Framerate())

	replayer.Next()
	replayer.Next()
	assert.Equal(t, 2, replayer.CurrentFrame())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	_, ok := replayer.Next()
	assert.True(t, ok)
}

func TestReplayer_DefaultFramerate(t *testing.T) {
	assert.Equal(t, 60, NewReplayer(ReplayData{}).Framerate())
	assert.Equal(t, 30, NewReplayer(ReplayData{Framerate: 30}).Framerate())
}

func TestSaveAndLoadReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	data := idleReplay(3)
	data.Frames[1] = NewFrame(1, system.InputState{Right: true, AimX: 0.1, AimY: 1e-9, AimActive: true})

	require.NoError(t, SaveReplay(path, data))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, data, *loaded)
}

func TestReplayErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("save without frames", func(t *testing.T) {
		err := SaveReplay(filepath.Join(dir, "empty.json"), ReplayData{Version: FormatVersion})
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadReplay(filepath.Join(dir, "missing.json"))
		assert.ErrorContains(t, err, "failed to open file")
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := LoadReplay(path)
		assert.ErrorContains(t, err, "failed to decode replay")
	})

	t.Run("old version", func(t *testing.T) {
		path := filepath.Join(dir, "old.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0","frames":[]}`), 0o644))
		_, err := LoadReplay(path)
		assert.ErrorContains(t, err, "unsupported replay version")
	})
}
