package playing

import (
	"log"

	"github.com/younwookim/raincoat/internal/application/state"
	"github.com/younwookim/raincoat/internal/application/system"
	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// Progress is the scoreboard for one attempt at a level.
type Progress struct {
	Drops        int
	TotalDrops   int
	Secrets      int
	TotalSecrets int
	Combo        int
	BestCombo    int
	Deaths       int
	Elapsed      float64 // seconds, excluding pauses
	ParTime      float64 // seconds
}

// UnderPar reports whether the level was finished within its par time.
func (p Progress) UnderPar() bool {
	return p.ParTime > 0 && p.Elapsed <= p.ParTime
}

// Session hosts one level: the controller, tile physics and triggers
// stepped in a fixed order. It has no rendering or input dependencies, so
// the same input sequence always produces the same run.
type Session struct {
	config     *config.PhysicsConfig
	stageCfg   *config.StageConfig
	stage      *entity.Stage
	player     *entity.Player
	controller *system.PlayerController
	physics    *system.PhysicsSystem
	triggers   *system.TriggerSystem
	state      state.GameState
	progress   Progress
	taken      map[takenKey]bool

	spawnX, spawnY float64
}

type takenKey struct {
	kind  system.TriggerKind
	index int
}

// NewSession builds a session for the given level
func NewSession(cfg *config.PhysicsConfig, stageCfg *config.StageConfig) *Session {
	s := &Session{
		config:     cfg,
		stageCfg:   stageCfg,
		controller: system.NewPlayerController(cfg),
	}
	s.load()
	log.Printf("Level %q started (%dx%d, %d anchors)", s.stage.Name, s.stage.Width, s.stage.Height, len(s.stage.Anchors))
	return s
}

func (s *Session) load() {
	s.stage = system.LoadStage(s.stageCfg)
	hitbox := entity.CenteredHitbox(s.config.Player.HitboxWidth, s.config.Player.HitboxHeight)
	s.player = entity.NewPlayer(s.stage.SpawnX, s.stage.SpawnY, hitbox)
	s.physics = system.NewPhysicsSystem(s.config, s.stage)
	s.triggers = system.NewTriggerSystem(s.config, s.stage, hitbox)
	s.state = state.StatePlaying
	s.spawnX, s.spawnY = s.stage.SpawnX, s.stage.SpawnY
	s.taken = make(map[takenKey]bool)
	s.progress = Progress{
		TotalDrops:   len(s.stage.Raindrops),
		TotalSecrets: len(s.stage.Secrets),
		ParTime:      float64(s.stage.ParTime),
	}
}

// Step advances the session by one tick of dt seconds and returns every cue
// the tick produced.
func (s *Session) Step(input system.InputState, dt float64) system.TickReport {
	var report system.TickReport

	if input.RestartPressed {
		s.Restart()
		report.Merge(system.TickReport{Combo: 0, ComboChanged: true})
		return report
	}

	switch s.state {
	case state.StatePaused:
		if input.PausePressed {
			s.state = state.StatePlaying
		}
		return report
	case state.StateLevelComplete:
		return report
	case state.StatePlaying:
		if input.PausePressed {
			s.state = state.StatePaused
			return report
		}
	}

	feet := s.feet()
	report.Merge(s.controller.Update(s.player, s.stage.Anchors, input, dt*1000))
	s.physics.Update(s.player, dt)
	s.progress.Elapsed += dt

	if s.state == state.StateDying {
		if report.RespawnDue {
			report.Merge(s.respawn())
		}
	} else {
		s.checkTriggers(&report, feet)
	}

	if report.ComboChanged {
		s.setCombo(report.Combo)
	}
	return report
}

// feet returns the bottom edge of the player's hitbox.
func (s *Session) feet() float64 {
	_, y, _, h := s.player.Hitbox.GetWorldRect(s.player.X, s.player.Y)
	return y + h
}

// checkTriggers handles everything the player touched this tick. prevFeet
// is the hitbox bottom before the tick moved the player.
func (s *Session) checkTriggers(report *system.TickReport, prevFeet float64) {
	if s.triggers.OutOfBounds(s.player) {
		s.kill(report, "fell out of the level")
		return
	}

	for _, hit := range s.triggers.Check(s.player) {
		if hit.Kind != system.TriggerSpike && hit.Kind != system.TriggerEnemy {
			s.taken[takenKey{hit.Kind, hit.Index}] = true
		}
		switch hit.Kind {
		case system.TriggerSpike:
			s.kill(report, "spikes")
			return
		case system.TriggerCheckpoint:
			s.spawnX, s.spawnY = hit.X, hit.Y-s.config.Combat.CheckpointLift
			report.Merge(system.TickReport{Cues: []system.Cue{system.CueCheckpoint}})
			log.Printf("Checkpoint %d reached at (%.0f, %.0f)", hit.Index, hit.X, hit.Y)
		case system.TriggerRaindrop:
			s.progress.Drops++
			report.Merge(system.TickReport{Cues: []system.Cue{system.CueCollect}})
		case system.TriggerSecret:
			s.progress.Secrets++
			report.Merge(system.TickReport{Cues: []system.Cue{system.CueSecret}})
			log.Printf("Secret %d found", hit.Index)
		case system.TriggerEnemy:
			s.touchEnemy(report, hit.Index, prevFeet)
		case system.TriggerFinish:
			s.complete(report)
			return
		}
	}
}

// touchEnemy stomps the enemy when the player came down onto its top and
// hurts the player otherwise. A hurt player passes through enemies.
func (s *Session) touchEnemy(report *system.TickReport, index int, prevFeet float64) {
	if s.player.IsHurt || s.taken[takenKey{system.TriggerEnemy, index}] {
		return
	}
	enemy := s.stage.Enemies[index]
	_, top, _, _ := enemy.Box(s.stage.TileSize)

	if s.player.VY > 0 && prevFeet <= top+s.config.Combat.StompMargin {
		s.triggers.Defeat(index)
		s.taken[takenKey{system.TriggerEnemy, index}] = true
		s.player.VY = s.config.Combat.StompBounce
		report.Merge(system.TickReport{Cues: []system.Cue{system.CueStomp}})
		log.Printf("Enemy %d stomped at (%.0f, %.0f)", index, enemy.X, enemy.Y)
		return
	}

	report.Merge(s.controller.Hurt(s.player, s.stage.Anchors))
	log.Printf("Player hurt by enemy %d at (%.0f, %.0f)", index, s.player.X, s.player.Y)
}

func (s *Session) kill(report *system.TickReport, cause string) {
	report.Merge(s.controller.Kill(s.player, s.stage.Anchors))
	s.state = state.StateDying
	s.progress.Deaths++
	log.Printf("Player died: %s at (%.0f, %.0f)", cause, s.player.X, s.player.Y)
}

func (s *Session) respawn() system.TickReport {
	s.state = state.StatePlaying
	log.Printf("Respawning at (%.0f, %.0f)", s.spawnX, s.spawnY)
	return s.controller.Respawn(s.player, s.stage.Anchors, s.spawnX, s.spawnY)
}

func (s *Session) complete(report *system.TickReport) {
	report.Merge(s.controller.Cancel(s.player, s.stage.Anchors))
	s.state = state.StateLevelComplete
	report.Merge(system.TickReport{Cues: []system.Cue{system.CueLevelComplete}})
	log.Printf("Level %q complete in %.2fs (par %.0fs), drops %d/%d, secrets %d/%d, best combo %d",
		s.stage.Name, s.progress.Elapsed, s.progress.ParTime,
		s.progress.Drops, s.progress.TotalDrops, s.progress.Secrets, s.progress.TotalSecrets,
		s.progress.BestCombo)
}

func (s *Session) setCombo(combo int) {
	s.progress.Combo = combo
	if combo > s.progress.BestCombo {
		s.progress.BestCombo = combo
	}
}

// Restart reloads the level from its config: pickups come back, progress
// and the combo start over.
func (s *Session) Restart() {
	s.load()
	log.Printf("Level %q restarted", s.stage.Name)
}

// Kill ends the current life the same way a hazard does.
func (s *Session) Kill() system.TickReport {
	var report system.TickReport
	if s.state != state.StatePlaying {
		return report
	}
	s.kill(&report, "killed")
	return report
}

// SetConfig swaps the tuning in place. The player, stage and collected
// triggers are kept.
func (s *Session) SetConfig(cfg *config.PhysicsConfig) {
	s.config = cfg
	s.controller = system.NewPlayerController(cfg)
	s.physics = system.NewPhysicsSystem(cfg, s.stage)
	s.triggers.SetConfig(cfg)
	s.player.Hitbox = entity.CenteredHitbox(cfg.Player.HitboxWidth, cfg.Player.HitboxHeight)
}

// Taken reports whether the marker at index of the given kind has been
// triggered in this attempt.
func (s *Session) Taken(kind system.TriggerKind, index int) bool {
	return s.taken[takenKey{kind, index}]
}

// Player returns the player state
func (s *Session) Player() *entity.Player { return s.player }

// Stage returns the loaded stage
func (s *Session) Stage() *entity.Stage { return s.stage }

// State returns the session phase
func (s *Session) State() state.GameState { return s.state }

// Progress returns the scoreboard
func (s *Session) Progress() Progress { return s.progress }

// Spawn returns where the player respawns next
func (s *Session) Spawn() (float64, float64) { return s.spawnX, s.spawnY }

// Config returns the tuning in use
func (s *Session) Config() *config.PhysicsConfig { return s.config }
