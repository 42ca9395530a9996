package playing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/raincoat/internal/application/replay"
	"github.com/younwookim/raincoat/internal/application/scene"
	"github.com/younwookim/raincoat/internal/application/system"
)

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
	var _ scene.Tunable = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), nil, "")

	require.NotNil(t, p)
	assert.NotNil(t, p.Session())
	assert.Nil(t, p.recorder)
	assert.Equal(t, 24.0, p.Session().Player().X)
}

func TestPlaying_Update_ReturnsNilWhenPlaying(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), nil, "")

	next, err := p.Update(tick)

	assert.NoError(t, err)
	assert.Nil(t, next, "Should return nil when continuing to play")
}

func TestPlaying_UpdateDispatchesCues(t *testing.T) {
	var log system.CueLog
	p := New(createTestConfig(), createTestStageConfig(), &log, "")

	for i := 0; i < 30; i++ {
		_, err := p.Update(tick)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, log.Count(system.CueLand))
}

func TestPlaying_OnEnter(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), nil, "")

	assert.NotPanics(t, func() {
		p.OnEnter()
	})
	// The corridor is 320px wide, narrower than the screen.
	assert.Zero(t, p.camera.X)
	assert.Zero(t, p.camera.Y)
}

func TestPlaying_SetConfig(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), nil, "")

	cfg := createTestConfig()
	cfg.Movement.MoveSpeed = 90
	p.SetConfig(cfg)

	assert.Same(t, cfg, p.Session().Config())
}

func TestPlaying_SetConfigEndsRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	p := New(createTestConfig(), createTestStageConfig(), nil, path)
	for i := 0; i < 3; i++ {
		_, err := p.Update(tick)
		require.NoError(t, err)
	}

	p.SetConfig(createTestConfig())
	assert.False(t, p.recorder.IsRecording())

	for i := 0; i < 3; i++ {
		_, err := p.Update(tick)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, p.recorder.FrameCount(), "frames after the swap are not recorded")

	p.OnExit()
	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, data.Frames, 3)
}

func TestPlaying_WithRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	p := New(createTestConfig(), createTestStageConfig(), nil, path)
	require.NotNil(t, p.recorder)

	_, err := p.Update(tick)
	require.NoError(t, err)
	_, err = p.Update(tick)
	require.NoError(t, err)
	assert.Equal(t, 2, p.recorder.FrameCount())

	p.OnExit()

	_, err = os.Stat(path)
	require.NoError(t, err)
	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	replayer := replay.NewReplayer(*data)
	assert.Equal(t, "corridor", replayer.Level())
	assert.Equal(t, 2, replayer.TotalFrames())
}

func TestPlaying_OnExitWithoutRecorder(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), nil, "")

	assert.NotPanics(t, func() {
		p.OnExit()
	})
}

func TestRecorder_StopAndIsRecording(t *testing.T) {
	r := NewRecorder("corridor", 60)

	assert.True(t, r.IsRecording())
	r.RecordFrame(system.InputState{Right: true, JumpPressed: true})
	assert.Equal(t, 1, r.FrameCount())

	r.Stop()
	assert.False(t, r.IsRecording())

	r.RecordFrame(system.InputState{Left: true})
	assert.Equal(t, 1, r.FrameCount(), "stopped recorder ignores frames")

	data := r.Data()
	assert.Equal(t, replay.FormatVersion, data.Version)
	assert.Equal(t, 60, data.Framerate)
	assert.Equal(t, system.InputState{Right: true, JumpPressed: true}, data.Frames[0].Input())
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()

	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "0:00"},
		{9.9, "0:09"},
		{61, "1:01"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTime(tt.sec))
	}
}
