package system

import (
	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// PlayerController advances the player one tick at a time. It owns no
// state of its own: everything lives in the Player and the anchor table
// passed to each call, and everything it produces comes back in a
// TickReport. dt is milliseconds.
type PlayerController struct {
	config   *config.PhysicsConfig
	movement *MovementSystem
	hook     *HookSystem
}

// NewPlayerController creates a controller for the given tuning
func NewPlayerController(cfg *config.PhysicsConfig) *PlayerController {
	return &PlayerController{
		config:   cfg,
		movement: NewMovementSystem(cfg),
		hook:     NewHookSystem(cfg),
	}
}

// Update runs one tick: timers, ground tracking, swing input or walking
// and jumping, aim, then the hook state machine.
func (c *PlayerController) Update(player *entity.Player, anchors []entity.Anchor, input InputState, dt float64) TickReport {
	report := TickReport{Combo: player.HookCombo}

	if player.IsDead {
		player.DeathTimer = countdown(player.DeathTimer, dt)
		report.RespawnDue = player.DeathTimer == 0
		return report
	}

	c.movement.updateTimers(player, dt)
	if c.movement.trackGround(player) {
		report.emit(CueLand)
		player.GroundTouchesSinceHook++
		if player.GroundTouchesSinceHook > 1 && player.HookCombo != 0 {
			player.HookCombo = 0
			report.setCombo(0)
		}
	}

	if player.HookState == entity.HookAttached {
		if anchor, ok := entity.LookupAnchor(anchors, player.HookAnchor); ok && player.Obstructed {
			c.hook.settleSwing(player, anchor)
		}
		c.hook.handleSwingInput(player, input)
	} else {
		c.movement.handleMovement(player, input)
		if c.movement.handleJump(player, input, dt) {
			report.emit(CueJump)
		}
	}

	player.AimX, player.AimY = c.hook.Aim(player, input)
	c.updateHook(player, anchors, input, dt, &report)

	return report
}

// updateHook applies this tick's hook actions and advances the hook phase.
func (c *PlayerController) updateHook(player *entity.Player, anchors []entity.Anchor, input InputState, dt float64, report *TickReport) {
	switch player.HookState {
	case entity.HookReady:
		if input.FirePressed || input.HookPressed {
			c.hook.Fire(player, anchors, report)
		}

	case entity.HookFiring:
		if input.CancelPressed || input.HookPressed {
			c.hook.Cancel(player, anchors)
			return
		}
		c.hook.advanceFlight(player, anchors, dt, report)

	case entity.HookAttached:
		if input.ReleasePressed {
			c.hook.Release(player, anchors, report)
			return
		}
		if input.CancelPressed || input.HookPressed {
			c.hook.Cancel(player, anchors)
			return
		}
		anchor, ok := entity.LookupAnchor(anchors, player.HookAnchor)
		if !ok {
			c.hook.Cancel(player, anchors)
			return
		}
		if c.hook.integrateSwing(player, anchor) {
			c.hook.Release(player, anchors, report)
		}
	}
}

// Fire attempts to launch the hook using the player's stored aim.
func (c *PlayerController) Fire(player *entity.Player, anchors []entity.Anchor) TickReport {
	report := TickReport{Combo: player.HookCombo}
	c.hook.Fire(player, anchors, &report)
	return report
}

// Release lets go of the rope with momentum. No-op unless attached.
func (c *PlayerController) Release(player *entity.Player, anchors []entity.Anchor) TickReport {
	report := TickReport{Combo: player.HookCombo}
	c.hook.Release(player, anchors, &report)
	return report
}

// Cancel drops the hook without momentum. No-op unless firing or attached.
func (c *PlayerController) Cancel(player *entity.Player, anchors []entity.Anchor) TickReport {
	report := TickReport{Combo: player.HookCombo}
	c.hook.Cancel(player, anchors)
	return report
}

// Hurt knocks the player back away from the facing direction and drops
// the hook. Ignored while dead or already hurt.
func (c *PlayerController) Hurt(player *entity.Player, anchors []entity.Anchor) TickReport {
	report := TickReport{Combo: player.HookCombo}
	if player.IsDead || player.IsHurt {
		return report
	}

	cfg := c.config.Combat
	c.hook.Cancel(player, anchors)
	player.IsHurt = true
	player.HurtTimer = cfg.HurtDuration
	player.VX = cfg.KnockbackX
	if player.FacingRight {
		player.VX = -cfg.KnockbackX
	}
	player.VY = cfg.KnockbackY
	report.emit(CueHurt)
	return report
}

// Kill starts the death sequence. Spikes, falling out of the level and
// any other lethal contact all come through here.
func (c *PlayerController) Kill(player *entity.Player, anchors []entity.Anchor) TickReport {
	report := TickReport{Combo: player.HookCombo}
	if player.IsDead {
		return report
	}

	c.hook.Cancel(player, anchors)
	player.IsDead = true
	player.IsHurt = false
	player.HurtTimer = 0
	player.IsJumping = false
	player.VX, player.VY = 0, 0
	player.DeathTimer = c.config.Combat.DeathDuration
	report.emit(CueDeath)
	return report
}

// Respawn reinitialises the player at (x, y). Whatever the hook was doing
// is dropped and the combo starts over.
func (c *PlayerController) Respawn(player *entity.Player, anchors []entity.Anchor, x, y float64) TickReport {
	if _, ok := entity.LookupAnchor(anchors, player.HookAnchor); ok {
		anchors[player.HookAnchor].Highlighted = false
	}
	player.Reset(x, y)

	report := TickReport{}
	report.setCombo(0)
	return report
}

// Aim returns the unit aim direction for the given input.
func (c *PlayerController) Aim(player *entity.Player, input InputState) (float64, float64) {
	return c.hook.Aim(player, input)
}
