package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

func createTestPhysicsConfig() *config.PhysicsConfig {
	return &config.PhysicsConfig{
		Physics: config.PhysicsSettings{
			Gravity:          800,
			MaxFallSpeed:     400,
			KillMargin:       50,
			CornerCorrection: 4,
		},
		Player: config.PlayerConfig{
			HitboxWidth:  12,
			HitboxHeight: 14,
		},
		Movement: config.MovementConfig{
			MoveSpeed: 150,
		},
		Jump: config.JumpConfig{
			Force:             -280,
			MaxHoldTime:       150,
			HoldDamping:       0.98,
			ShortHopThreshold: 100,
			ShortHopFactor:    0.5,
			CoyoteTime:        120,
			JumpBuffer:        100,
		},
		Hook: config.HookConfig{
			MaxLength:    300,
			Speed:        600,
			Cooldown:     500,
			ConeDot:      0.3,
			AimDeadzone:  10,
			DefaultAimUp: 0.5,
		},
		Swing: config.SwingConfig{
			Gravity:           0.006,
			Damping:           0.998,
			Acceleration:      0.003,
			MaxSpeed:          0.08,
			AttachScale:       0.008,
			AttachLimit:       0.5,
			ReelRate:          0.15,
			ReelStopLength:    50,
			AutoReleaseLength: 30,
			ReleaseScale:      4,
			ReleaseLift:       120,
			ReleaseMinUpward:  -50,
			TickRate:          60,
		},
		Combat: config.CombatConfig{
			HurtDuration:   800,
			KnockbackX:     100,
			KnockbackY:     -200,
			DeathDuration:  2000,
			CheckpointLift: 16,
			StompBounce:    -200,
			StompMargin:    4,
		},
	}
}

// createTestStage builds a 5x5 room of 16px tiles: walls on every edge and
// an empty 3x3 centre.
func createTestStage() *entity.Stage {
	tiles := make([][]entity.Tile, 5)
	for y := 0; y < 5; y++ {
		tiles[y] = make([]entity.Tile, 5)
		for x := 0; x < 5; x++ {
			if x == 0 || x == 4 || y == 0 || y == 4 {
				tiles[y][x] = entity.Tile{Type: entity.TileStone, Solid: true}
			}
		}
	}

	return &entity.Stage{
		Width:    5,
		Height:   5,
		TileSize: 16,
		Tiles:    tiles,
		SpawnX:   40,
		SpawnY:   40,
	}
}

func createTestPlayer() *entity.Player {
	return entity.NewPlayer(40, 40, entity.CenteredHitbox(12, 14))
}

func TestNewPhysicsSystem(t *testing.T) {
	cfg := createTestPhysicsConfig()
	stage := createTestStage()

	sys := NewPhysicsSystem(cfg, stage)

	require.NotNil(t, sys)
	assert.Equal(t, cfg, sys.config)
	assert.Equal(t, stage, sys.stage)
}

func TestPhysicsSystem_IsSolidRect(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestStage())

	tests := []struct {
		name       string
		x, y, w, h float64
		want       bool
	}{
		{"inside empty centre", 20, 20, 12, 14, false},
		{"touching wall edge exactly", 16, 16, 16, 16, false},
		{"overlapping left wall", 15.5, 20, 12, 14, true},
		{"overlapping floor", 20, 52, 12, 14, true},
		{"spanning the whole centre", 16, 16, 48, 48, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sys.isSolidRect(tt.x, tt.y, tt.w, tt.h, false, 0))
		})
	}
}

func TestPhysicsSystem_Gravity(t *testing.T) {
	cfg := createTestPhysicsConfig()
	sys := NewPhysicsSystem(cfg, createTestStage())

	t.Run("accelerates a free body", func(t *testing.T) {
		player := createTestPlayer()
		sys.Update(player, 1.0/60)
		assert.InDelta(t, 800.0/60, player.VY, 0.001)
		assert.Greater(t, player.Y, 40.0)
	})

	t.Run("clamps to max fall speed", func(t *testing.T) {
		player := createTestPlayer()
		player.VY = 399
		sys.applyGravity(player, 1.0/60)
		assert.Equal(t, cfg.Physics.MaxFallSpeed, player.VY)
	})

	t.Run("skipped when gravity disabled", func(t *testing.T) {
		player := createTestPlayer()
		player.GravityEnabled = false
		sys.Update(player, 1.0/60)
		assert.Zero(t, player.VY)
		assert.Equal(t, 40.0, player.Y)
	})
}

func TestPhysicsSystem_LandsOnFloor(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestStage())
	player := createTestPlayer()

	for i := 0; i < 120; i++ {
		sys.Update(player, 1.0/60)
	}

	assert.True(t, player.OnGround)
	_, y, _, h := player.Hitbox.GetWorldRect(player.X, player.Y)
	assert.LessOrEqual(t, y+h, 64.0, "hitbox stays above the floor row")
	assert.InDelta(t, 64.0, y+h, 1.0)
}

func TestPhysicsSystem_Walls(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestStage())

	t.Run("stops at right wall", func(t *testing.T) {
		player := createTestPlayer()
		player.GravityEnabled = false
		player.VX = 600
		for i := 0; i < 30; i++ {
			sys.Update(player, 1.0/60)
		}
		assert.Zero(t, player.VX)
		assert.True(t, player.BlockedRight)
		assert.False(t, player.BlockedLeft)
		assert.LessOrEqual(t, player.X+6, 64.0)
	})

	t.Run("stops at left wall", func(t *testing.T) {
		player := createTestPlayer()
		player.GravityEnabled = false
		player.VX = -600
		for i := 0; i < 30; i++ {
			sys.Update(player, 1.0/60)
		}
		assert.True(t, player.BlockedLeft)
		assert.GreaterOrEqual(t, player.X-6, 16.0)
	})

	t.Run("hits ceiling", func(t *testing.T) {
		player := createTestPlayer()
		player.GravityEnabled = false
		player.VY = -600
		sys.Update(player, 1.0/60)
		sys.Update(player, 1.0/60)
		assert.Zero(t, player.VY)
		assert.GreaterOrEqual(t, player.Y-7, 16.0)
	})
}

func TestPhysicsSystem_Kinematic(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestStage())

	t.Run("velocity is not integrated", func(t *testing.T) {
		player := createTestPlayer()
		player.Kinematic = true
		player.VX, player.VY = 300, 300
		sys.Update(player, 1.0/60)
		assert.Equal(t, 40.0, player.X)
		assert.Equal(t, 40.0, player.Y)
		assert.Equal(t, 300.0, player.VY, "velocity left for the controller")
	})

	t.Run("swept into the floor stops on it", func(t *testing.T) {
		player := createTestPlayer()
		player.Kinematic = true
		player.Y = 58 // hitbox bottom at 65, one pixel into the floor
		sys.Update(player, 1.0/60)
		_, y, _, h := player.Hitbox.GetWorldRect(player.X, player.Y)
		assert.LessOrEqual(t, y+h, 64.0)
		assert.True(t, player.Obstructed)
		assert.True(t, player.OnGround)
	})

	t.Run("swept into a wall stops at it", func(t *testing.T) {
		player := createTestPlayer()
		player.Kinematic = true
		player.X = 100 // well past the right wall
		sys.Update(player, 1.0/60)
		assert.True(t, player.Obstructed)
		assert.True(t, player.BlockedRight)
		assert.LessOrEqual(t, player.X+6, 64.0)
		assert.Greater(t, player.X, 40.0, "moved up to the wall, not back to spawn")
		assert.Equal(t, player.X, player.PrevX)
	})

	t.Run("clear move reaches the target", func(t *testing.T) {
		player := createTestPlayer()
		player.Kinematic = true
		player.X, player.Y = 43.5, 37.25
		sys.Update(player, 1.0/60)
		assert.False(t, player.Obstructed)
		assert.Equal(t, 43.5, player.X)
		assert.Equal(t, 37.25, player.Y)
	})
}

func TestPhysicsSystem_OneWayPlatform(t *testing.T) {
	stage := createTestStage()
	stage.Tiles[2][2] = entity.Tile{Type: entity.TilePlatform}
	sys := NewPhysicsSystem(createTestPhysicsConfig(), stage)

	t.Run("lands on platform from above", func(t *testing.T) {
		player := createTestPlayer()
		player.Y = 24 // hitbox bottom at 31, above the platform top at 32
		for i := 0; i < 60; i++ {
			sys.Update(player, 1.0/60)
		}
		assert.True(t, player.OnGround)
		assert.InDelta(t, 32.0, player.Y+7, 1.0)
	})

	t.Run("passes through from below", func(t *testing.T) {
		player := createTestPlayer()
		player.Y = 54
		player.VY = -400
		player.GravityEnabled = false
		for i := 0; i < 6; i++ {
			sys.Update(player, 1.0/60)
		}
		assert.Less(t, player.Y, 40.0, "rose through the platform row")
	})
}

func TestPhysicsSystem_ResolveOverlapStuckResetsToSpawn(t *testing.T) {
	stage := createTestStage()
	sys := NewPhysicsSystem(createTestPhysicsConfig(), stage)
	player := createTestPlayer()
	player.X, player.Y = -100, 40 // deep inside the out-of-bounds wall

	resolved := sys.resolveOverlap(player)

	assert.False(t, resolved)
	assert.Equal(t, stage.SpawnX, player.X)
	assert.Equal(t, stage.SpawnY, player.Y)
}
