package system

import (
	"math"

	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// PhysicsSystem is the world host: it integrates gravity and velocity,
// resolves tile collisions and reports contact flags. dt is seconds.
type PhysicsSystem struct {
	config *config.PhysicsConfig
	stage  *entity.Stage
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{
		config: cfg,
		stage:  stage,
	}
}

// Update advances the player body by dt. Kinematic bodies are swept to the
// position the controller gave them instead of being integrated.
func (s *PhysicsSystem) Update(player *entity.Player, dt float64) {
	player.OnCeiling = false
	player.Obstructed = false

	if player.Kinematic {
		s.sweep(player)
	} else {
		s.resolveOverlap(player)
		s.applyGravity(player, dt)
		s.moveX(player, player.VX*dt)
		s.moveY(player, player.VY*dt)
		s.resolveOverlap(player)
	}

	s.senseContacts(player)
	player.PrevX, player.PrevY = player.X, player.Y
}

// sweep walks a kinematic body from where it was last left to its target,
// stopping at the first solid tile like an integrated body would.
func (s *PhysicsSystem) sweep(player *entity.Player) {
	tx, ty := player.X, player.Y
	player.X, player.Y = player.PrevX, player.PrevY

	blockedX := s.moveX(player, tx-player.X)
	if !blockedX {
		player.X = tx
	}
	blockedY := s.moveY(player, ty-player.Y)
	if !blockedY {
		player.Y = ty
	}
	player.Obstructed = blockedX || blockedY
}

// applyGravity applies gravity acceleration to the player
func (s *PhysicsSystem) applyGravity(player *entity.Player, dt float64) {
	if !player.GravityEnabled {
		return
	}

	player.VY += s.config.Physics.Gravity * dt
	if player.VY > s.config.Physics.MaxFallSpeed {
		player.VY = s.config.Physics.MaxFallSpeed
	}
}

// moveX moves player horizontally in steps of at most one pixel. It
// reports whether a solid tile stopped the move.
func (s *PhysicsSystem) moveX(player *entity.Player, dx float64) bool {
	for dx != 0 {
		step := unitStep(dx)
		if s.collidesAt(player, player.X+step, player.Y, false) {
			player.VX = 0
			return true
		}
		player.X += step
		dx -= step
	}
	return false
}

// moveY moves player vertically in steps of at most one pixel. It reports
// whether a solid tile stopped the move.
func (s *PhysicsSystem) moveY(player *entity.Player, dy float64) bool {
	for dy != 0 {
		step := unitStep(dy)
		if s.collidesAt(player, player.X, player.Y+step, step > 0) {
			player.VY = 0
			if step < 0 {
				player.OnCeiling = true
				if !player.Kinematic {
					s.tryCornerCorrection(player)
				}
			}
			return true
		}
		player.Y += step
		dy -= step
	}
	return false
}

// senseContacts sets the ground and wall flags from the tiles touching the hitbox.
func (s *PhysicsSystem) senseContacts(player *entity.Player) {
	player.OnGround = player.VY >= 0 && s.collidesAt(player, player.X, player.Y+1, true)
	player.BlockedLeft = s.collidesAt(player, player.X-1, player.Y, false)
	player.BlockedRight = s.collidesAt(player, player.X+1, player.Y, false)
}

// tryCornerCorrection nudges the player around a ceiling corner
func (s *PhysicsSystem) tryCornerCorrection(player *entity.Player) {
	margin := s.config.Physics.CornerCorrection
	for i := 1; i <= margin; i++ {
		for _, dir := range []float64{-1, 1} {
			testX := player.X + dir*float64(i)
			if !s.collidesAt(player, testX, player.Y-1, false) {
				player.X = testX
				player.OnCeiling = false
				return
			}
		}
	}
}

// resolveOverlap pushes player out of any solid tiles they're currently overlapping
// Returns true if overlap was resolved, false if player is stuck
func (s *PhysicsSystem) resolveOverlap(player *entity.Player) bool {
	const maxPushOut = 8

	if !s.collidesAt(player, player.X, player.Y, false) {
		return true
	}

	type pushOption struct {
		dx, dy float64
	}
	dirs := []pushOption{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for i := 1; i <= maxPushOut; i++ {
		d := float64(i)
		for _, dir := range dirs {
			if s.collidesAt(player, player.X+dir.dx*d, player.Y+dir.dy*d, false) {
				continue
			}
			player.X += dir.dx * d
			player.Y += dir.dy * d
			if dir.dx != 0 {
				player.VX = 0
			}
			if dir.dy != 0 {
				player.VY = 0
			}
			return true
		}
	}

	// Can't resolve - reset player to spawn position. Only free bodies get
	// here; kinematic ones are swept and never start inside a tile.
	player.X = s.stage.SpawnX
	player.Y = s.stage.SpawnY
	player.VX = 0
	player.VY = 0
	return false
}

// collidesAt reports whether the hitbox at (x, y) overlaps a solid tile.
// When falling, one-way platforms are solid if the hitbox bottom was above
// the platform top before the step.
func (s *PhysicsSystem) collidesAt(player *entity.Player, x, y float64, falling bool) bool {
	rx, ry, rw, rh := player.Hitbox.GetWorldRect(x, y)
	prevBottom := 0.0
	if falling {
		_, py, _, ph := player.Hitbox.GetWorldRect(player.X, player.Y)
		prevBottom = py + ph
	}
	return s.isSolidRect(rx, ry, rw, rh, falling, prevBottom)
}

// isSolidRect checks if any tile in the rect is solid
// Iterates all tiles the rectangle overlaps to handle any hitbox size
func (s *PhysicsSystem) isSolidRect(x, y, w, h float64, falling bool, prevBottom float64) bool {
	tileSize := s.stage.TileSize
	if tileSize <= 0 {
		tileSize = config.DefaultTileSize
	}
	ts := float64(tileSize)

	startTX := int(math.Floor(x / ts))
	endTX := int(math.Floor((x + w - epsilon) / ts))
	startTY := int(math.Floor(y / ts))
	endTY := int(math.Floor((y + h - epsilon) / ts))

	for ty := startTY; ty <= endTY; ty++ {
		for tx := startTX; tx <= endTX; tx++ {
			tile := s.stage.GetTile(tx, ty)
			if tile.Solid {
				return true
			}
			if falling && tile.Type == entity.TilePlatform && prevBottom <= float64(ty)*ts {
				return true
			}
		}
	}

	return false
}

// epsilon keeps a rect that ends exactly on a tile edge out of the next tile.
const epsilon = 1e-6

func unitStep(d float64) float64 {
	if d > 1 {
		return 1
	}
	if d < -1 {
		return -1
	}
	return d
}
