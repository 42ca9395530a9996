package system

import (
	"math"

	"github.com/younwookim/raincoat/internal/domain/entity"
)

// integrateSwing advances the pendulum by one tick and places the player on
// the rope. It reports whether the rope is now short enough to let go.
func (s *HookSystem) integrateSwing(player *entity.Player, anchor entity.Anchor) bool {
	cfg := s.config.Swing

	w := player.SwingAngularVelocity
	w += -cfg.Gravity * math.Sin(player.SwingAngle)
	w *= cfg.Damping
	player.SwingAngularVelocity = clamp(w, -cfg.MaxSpeed, cfg.MaxSpeed)
	player.SwingAngle += player.SwingAngularVelocity

	nx := anchor.X + player.RopeLength*math.Sin(player.SwingAngle)
	ny := anchor.Y + player.RopeLength*math.Cos(player.SwingAngle)
	// Positional delta as velocity so collision response stays consistent.
	player.VX = (nx - player.X) * cfg.TickRate
	player.VY = (ny - player.Y) * cfg.TickRate
	player.X, player.Y = nx, ny

	if player.RopeLength > cfg.ReelStopLength {
		player.RopeLength = math.Max(player.RopeLength-cfg.ReelRate, 0)
	}
	return player.RopeLength < cfg.AutoReleaseLength
}

// settleSwing re-derives the rope from where a wall stopped the body and
// drops the swing's momentum.
func (s *HookSystem) settleSwing(player *entity.Player, anchor entity.Anchor) {
	dx, dy := player.X-anchor.X, player.Y-anchor.Y
	if length := math.Hypot(dx, dy); length > 0 {
		player.RopeLength = length
		player.SwingAngle = math.Atan2(dx, dy)
	}
	player.SwingAngularVelocity = 0
}

// handleSwingInput lets left/right pump the swing instead of walking.
func (s *HookSystem) handleSwingInput(player *entity.Player, input InputState) {
	cfg := s.config.Swing

	switch {
	case input.Left:
		player.SwingAngularVelocity -= cfg.Acceleration
		player.FacingRight = false
	case input.Right:
		player.SwingAngularVelocity += cfg.Acceleration
		player.FacingRight = true
	}
	player.SwingAngularVelocity = clamp(player.SwingAngularVelocity, -cfg.MaxSpeed, cfg.MaxSpeed)
}
