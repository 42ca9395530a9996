package system

import (
	"math"

	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// HookSystem runs the grappling hook: aiming, anchor selection, the
// flight countdown, attach, release and cancel. dt is milliseconds.
type HookSystem struct {
	config *config.PhysicsConfig
}

// NewHookSystem creates a new hook system
func NewHookSystem(cfg *config.PhysicsConfig) *HookSystem {
	return &HookSystem{config: cfg}
}

// Aim returns the unit aim direction. Held direction keys win over the
// pointer, and the pointer wins over the facing default once it leaves
// the deadzone.
func (s *HookSystem) Aim(player *entity.Player, input InputState) (float64, float64) {
	if input.HasDirection() {
		var x, y float64
		if input.Left {
			x = -1
		}
		if input.Right {
			x = 1
		}
		if input.Up {
			y = -1
		}
		if input.Down {
			y = 1
		}
		return normalize(x, y)
	}

	if input.AimActive {
		dx, dy := input.AimX-player.X, input.AimY-player.Y
		if math.Hypot(dx, dy) > s.config.Hook.AimDeadzone {
			return normalize(dx, dy)
		}
	}

	facing := 1.0
	if !player.FacingRight {
		facing = -1
	}
	return normalize(facing, -s.config.Hook.DefaultAimUp)
}

// Fire picks the nearest anchor inside range and the aim cone and starts
// the flight towards it. It does nothing unless the hook is ready.
func (s *HookSystem) Fire(player *entity.Player, anchors []entity.Anchor, report *TickReport) bool {
	if player.IsDead || player.HookState != entity.HookReady {
		return false
	}

	cfg := s.config.Hook
	best := entity.NoAnchor
	bestDist := 0.0
	for i, a := range anchors {
		dx, dy := a.X-player.X, a.Y-player.Y
		dist := math.Hypot(dx, dy)
		if !(dist > 0 && dist <= cfg.MaxLength) {
			continue
		}
		dot := (dx*player.AimX + dy*player.AimY) / dist
		if !(dot >= cfg.ConeDot) {
			continue
		}
		if best == entity.NoAnchor || dist < bestDist {
			best = entity.AnchorID(i)
			bestDist = dist
		}
	}
	if best == entity.NoAnchor {
		return false
	}

	player.HookAnchor = best
	player.HookState = entity.HookFiring
	player.FlightDuration = 0
	if cfg.Speed > 0 {
		player.FlightDuration = bestDist / cfg.Speed * 1000
	}
	player.FlightTimer = player.FlightDuration
	report.emit(CueHookFire)
	return true
}

// advanceFlight counts the flight down and attaches when it lands.
func (s *HookSystem) advanceFlight(player *entity.Player, anchors []entity.Anchor, dt float64, report *TickReport) {
	player.FlightTimer = countdown(player.FlightTimer, dt)
	if player.FlightTimer == 0 {
		s.attach(player, anchors, report)
	}
}

// FlightProgress returns how far the hook has travelled, from 0 to 1.
func FlightProgress(player *entity.Player) float64 {
	if player.HookState != entity.HookFiring || player.FlightDuration <= 0 {
		return 1
	}
	return 1 - player.FlightTimer/player.FlightDuration
}

// attach hangs the player from the hook anchor, seeding the swing from the
// player's current tangential velocity.
func (s *HookSystem) attach(player *entity.Player, anchors []entity.Anchor, report *TickReport) {
	anchor, ok := entity.LookupAnchor(anchors, player.HookAnchor)
	if !ok {
		s.cleanup(player, anchors)
		return
	}
	dx, dy := player.X-anchor.X, player.Y-anchor.Y
	length := math.Hypot(dx, dy)
	if !(length > 0) {
		s.cleanup(player, anchors)
		return
	}

	cfg := s.config.Swing
	anchors[player.HookAnchor].Highlighted = true

	player.RopeLength = length
	player.SwingAngle = math.Atan2(dx, dy)
	tx, ty := math.Cos(player.SwingAngle), -math.Sin(player.SwingAngle)
	tangential := player.VX*tx + player.VY*ty
	limit := cfg.MaxSpeed * cfg.AttachLimit
	player.SwingAngularVelocity = clamp(tangential/length*cfg.AttachScale, -limit, limit)

	player.HookState = entity.HookAttached
	player.FlightTimer = 0
	player.GravityEnabled = false
	player.Kinematic = true
	report.emit(CueHookAttach)
}

// Release lets go of the rope, converting the swing into linear velocity.
// A release with at most one ground touch since the last one extends the
// combo.
func (s *HookSystem) Release(player *entity.Player, anchors []entity.Anchor, report *TickReport) bool {
	if player.HookState != entity.HookAttached {
		return false
	}

	cfg := s.config.Swing
	tx, ty := math.Cos(player.SwingAngle), -math.Sin(player.SwingAngle)
	speed := player.SwingAngularVelocity * player.RopeLength * cfg.ReleaseScale
	player.VX = tx * speed
	player.VY = math.Min(ty*speed-cfg.ReleaseLift, cfg.ReleaseMinUpward)

	if player.GroundTouchesSinceHook <= 1 {
		player.HookCombo++
		report.setCombo(player.HookCombo)
	}
	player.GroundTouchesSinceHook = 0

	s.cleanup(player, anchors)
	report.emit(CueHookRelease)
	return true
}

// Cancel drops the hook without any momentum transfer. It applies while the
// hook is flying or attached and is a no-op otherwise.
func (s *HookSystem) Cancel(player *entity.Player, anchors []entity.Anchor) bool {
	if player.HookState != entity.HookFiring && player.HookState != entity.HookAttached {
		return false
	}
	s.cleanup(player, anchors)
	return true
}

// cleanup is the single exit from Firing and Attached.
func (s *HookSystem) cleanup(player *entity.Player, anchors []entity.Anchor) {
	if _, ok := entity.LookupAnchor(anchors, player.HookAnchor); ok {
		anchors[player.HookAnchor].Highlighted = false
	}
	player.HookAnchor = entity.NoAnchor
	player.HookState = entity.HookCooldown
	player.HookCooldownTimer = s.config.Hook.Cooldown
	player.GravityEnabled = true
	player.Kinematic = false
	player.SwingAngle = 0
	player.SwingAngularVelocity = 0
	player.RopeLength = 0
	player.FlightTimer = 0
	player.FlightDuration = 0
}

func normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
