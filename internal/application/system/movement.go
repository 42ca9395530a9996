package system

import (
	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// MovementSystem handles grounded and airborne locomotion: walking,
// coyote time, jump buffering and variable jump height. dt is milliseconds.
type MovementSystem struct {
	config *config.PhysicsConfig
}

// NewMovementSystem creates a new movement system
func NewMovementSystem(cfg *config.PhysicsConfig) *MovementSystem {
	return &MovementSystem{config: cfg}
}

// updateTimers counts every player timer down by dt, clamped at zero.
// A hook cooling down becomes ready when its timer runs out.
func (s *MovementSystem) updateTimers(player *entity.Player, dt float64) {
	player.CoyoteTimer = countdown(player.CoyoteTimer, dt)
	player.JumpBufferTimer = countdown(player.JumpBufferTimer, dt)

	player.HookCooldownTimer = countdown(player.HookCooldownTimer, dt)
	if player.HookState == entity.HookCooldown && player.HookCooldownTimer == 0 {
		player.HookState = entity.HookReady
	}

	if player.IsHurt {
		player.HurtTimer = countdown(player.HurtTimer, dt)
		if player.HurtTimer == 0 {
			player.IsHurt = false
		}
	}
}

// trackGround handles the landing edge and refreshes coyote time while
// grounded. It returns true on the tick the player lands.
func (s *MovementSystem) trackGround(player *entity.Player) bool {
	landed := player.OnGround && !player.WasOnGround
	player.WasOnGround = player.OnGround

	if player.OnGround {
		player.CoyoteTimer = s.config.Jump.CoyoteTime
	}
	if landed {
		player.IsJumping = false
	}
	return landed
}

// handleMovement sets horizontal velocity from input. Left wins when both
// directions are held.
func (s *MovementSystem) handleMovement(player *entity.Player, input InputState) {
	speed := s.config.Movement.MoveSpeed

	switch {
	case input.Left:
		player.VX = -speed
		player.FacingRight = false
	case input.Right:
		player.VX = speed
		player.FacingRight = true
	default:
		player.VX = 0
	}
}

// handleJump buffers jump presses and starts a jump when the buffer, ground
// or coyote window and jump state allow it. It returns true when a jump
// started this tick.
func (s *MovementSystem) handleJump(player *entity.Player, input InputState, dt float64) bool {
	cfg := s.config.Jump

	if input.JumpPressed {
		player.JumpBufferTimer = cfg.JumpBuffer
	}

	jumped := false
	canJump := player.OnGround || player.CoyoteTimer > 0
	if player.JumpBufferTimer > 0 && canJump && !player.IsJumping {
		player.VY = cfg.Force
		player.IsJumping = true
		player.JumpHoldTime = 0
		player.CoyoteTimer = 0
		player.JumpBufferTimer = 0
		jumped = true
	}

	if !player.IsJumping {
		return jumped
	}

	if input.Jump {
		// Holding softens the arc instead of capping it.
		if player.JumpHoldTime < cfg.MaxHoldTime {
			player.JumpHoldTime += dt
			if player.VY < 0 {
				player.VY *= cfg.HoldDamping
			}
		}
	} else if player.VY < -cfg.ShortHopThreshold {
		player.VY *= cfg.ShortHopFactor
		player.IsJumping = false
	}

	return jumped
}

func countdown(v, dt float64) float64 {
	v -= dt
	if v < 0 {
		return 0
	}
	return v
}
