package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/younwookim/raincoat/internal/application/replay"
	"github.com/younwookim/raincoat/internal/application/scene/playing"
	"github.com/younwookim/raincoat/internal/application/state"
	"github.com/younwookim/raincoat/internal/application/system"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// ReplayResult summarises a headless replay run
type ReplayResult struct {
	Level    string
	Frames   int
	State    state.GameState
	Progress playing.Progress
	Cues     map[system.Cue]int
	FinalX   float64
	FinalY   float64
}

// String formats the result for the terminal
func (r ReplayResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "level %s: %d frames, %s\n", r.Level, r.Frames, r.State)
	fmt.Fprintf(&b, "  time %.2fs, deaths %d, drops %d/%d, secrets %d/%d, best combo %d\n",
		r.Progress.Elapsed, r.Progress.Deaths,
		r.Progress.Drops, r.Progress.TotalDrops,
		r.Progress.Secrets, r.Progress.TotalSecrets,
		r.Progress.BestCombo)
	fmt.Fprintf(&b, "  final position (%.1f, %.1f)\n", r.FinalX, r.FinalY)

	cues := make([]system.Cue, 0, len(r.Cues))
	for c := range r.Cues {
		cues = append(cues, c)
	}
	sort.Slice(cues, func(i, j int) bool { return cues[i] < cues[j] })
	for _, c := range cues {
		fmt.Fprintf(&b, "  %-14s %d\n", c, r.Cues[c])
	}
	return b.String()
}

// runReplay feeds every recorded frame to a fresh session. Sessions are
// deterministic, so the result matches what the player saw.
func runReplay(physics *config.PhysicsConfig, stageCfg *config.StageConfig, data replay.ReplayData) ReplayResult {
	session := playing.NewSession(physics, stageCfg)
	replayer := replay.NewReplayer(data)
	dt := 1.0 / float64(replayer.Framerate())

	var cues system.CueLog
	for {
		input, ok := replayer.Next()
		if !ok {
			break
		}
		report := session.Step(input, dt)
		report.Dispatch(&cues)
	}

	result := ReplayResult{
		Level:    stageCfg.ID,
		Frames:   replayer.CurrentFrame(),
		State:    session.State(),
		Progress: session.Progress(),
		Cues:     make(map[system.Cue]int),
		FinalX:   session.Player().X,
		FinalY:   session.Player().Y,
	}
	for _, c := range cues.Cues {
		result.Cues[c]++
	}
	return result
}

// loadReplay reads a recording and the level it was made on.
func loadReplay(loader *config.Loader, catalog *config.LevelCatalog, path string) (*replay.ReplayData, *config.StageConfig, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return nil, nil, err
	}
	stageCfg, err := loader.LoadStage(catalog, data.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("replay %s: %w", path, err)
	}
	return data, stageCfg, nil
}
