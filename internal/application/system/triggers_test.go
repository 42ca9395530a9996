package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

func createTriggerStage() *entity.Stage {
	return LoadStage(&config.StageConfig{
		TileSize: 16,
		Map: `
..........
.@.r.*.C.F
####^^####
`,
	})
}

func TestTriggerSystem_Pickups(t *testing.T) {
	cfg := createTestPhysicsConfig()
	stage := createTriggerStage()
	sys := NewTriggerSystem(cfg, stage, entity.CenteredHitbox(12, 14))
	player := entity.NewPlayer(stage.SpawnX, stage.SpawnY, entity.CenteredHitbox(12, 14))

	assert.Empty(t, sys.Check(player), "nothing at spawn")
	assert.Equal(t, 1, sys.Remaining(TriggerRaindrop))

	player.X = stage.Raindrops[0].X
	hits := sys.Check(player)
	require.Len(t, hits, 1)
	assert.Equal(t, TriggerHit{Kind: TriggerRaindrop, Index: 0, X: 56, Y: 24}, hits[0])

	assert.Empty(t, sys.Check(player), "collected once")
	assert.Zero(t, sys.Remaining(TriggerRaindrop))

	player.X = stage.Secrets[0].X
	hits = sys.Check(player)
	require.Len(t, hits, 1)
	assert.Equal(t, TriggerSecret, hits[0].Kind)

	player.X = stage.Checkpoints[0].X
	hits = sys.Check(player)
	require.Len(t, hits, 1)
	assert.Equal(t, TriggerCheckpoint, hits[0].Kind)
	assert.Equal(t, 120.0, hits[0].X)

	player.X = stage.Finish.X
	hits = sys.Check(player)
	require.Len(t, hits, 1)
	assert.Equal(t, TriggerFinish, hits[0].Kind)
	assert.Zero(t, sys.Remaining(TriggerFinish))
}

func TestTriggerSystem_FinishReachesAboveItsCell(t *testing.T) {
	stage := createTriggerStage()
	sys := NewTriggerSystem(createTestPhysicsConfig(), stage, entity.CenteredHitbox(12, 14))
	player := entity.NewPlayer(stage.Finish.X, stage.Finish.Y-16, entity.CenteredHitbox(12, 14))

	hits := sys.Check(player)

	require.Len(t, hits, 1)
	assert.Equal(t, TriggerFinish, hits[0].Kind)
}

func TestTriggerSystem_Spikes(t *testing.T) {
	stage := createTriggerStage()
	sys := NewTriggerSystem(createTestPhysicsConfig(), stage, entity.CenteredHitbox(12, 14))

	t.Run("standing on the row above is safe", func(t *testing.T) {
		player := entity.NewPlayer(72, 25, entity.CenteredHitbox(12, 14))
		assert.Empty(t, sys.Check(player))
	})

	t.Run("touching the points hurts every time", func(t *testing.T) {
		player := entity.NewPlayer(72, 38, entity.CenteredHitbox(12, 14))

		for i := 0; i < 3; i++ {
			hits := sys.Check(player)
			require.NotEmpty(t, hits)
			for _, h := range hits {
				assert.Equal(t, TriggerSpike, h.Kind)
			}
		}
		assert.Equal(t, 2, sys.Remaining(TriggerSpike))
	})
}

func TestTriggerSystem_OutOfBounds(t *testing.T) {
	cfg := createTestPhysicsConfig()
	stage := createTriggerStage()
	sys := NewTriggerSystem(cfg, stage, entity.CenteredHitbox(12, 14))
	player := createTestPlayer()

	player.Y = stage.PixelHeight() + cfg.Physics.KillMargin
	assert.False(t, sys.OutOfBounds(player))

	player.Y++
	assert.True(t, sys.OutOfBounds(player))
}

func TestTriggerSystem_Enemies(t *testing.T) {
	stage := LoadStage(&config.StageConfig{TileSize: 16, Map: ".......\n.@..1.2\n#######"})
	sys := NewTriggerSystem(createTestPhysicsConfig(), stage, entity.CenteredHitbox(12, 14))
	require.Len(t, stage.Enemies, 2)
	assert.Equal(t, 2, sys.Remaining(TriggerEnemy))

	player := entity.NewPlayer(stage.Enemies[0].X, stage.Enemies[0].Y, entity.CenteredHitbox(12, 14))

	for i := 0; i < 2; i++ {
		hits := sys.Check(player)
		require.Len(t, hits, 1, "contact %d", i)
		assert.Equal(t, TriggerHit{Kind: TriggerEnemy, Index: 0, X: 72, Y: 24}, hits[0])
	}

	assert.True(t, sys.Defeat(0))
	assert.False(t, sys.Defeat(0), "already gone")
	assert.Empty(t, sys.Check(player))
	assert.Equal(t, 1, sys.Remaining(TriggerEnemy))

	t.Run("body sits low in its cell", func(t *testing.T) {
		above := entity.NewPlayer(stage.Enemies[1].X, stage.Enemies[1].Y-12, entity.CenteredHitbox(12, 14))
		assert.Empty(t, sys.Check(above), "feet at 19px clear the body top at 20px")
	})
}

func TestTriggerSystem_SetConfigResizesPlayer(t *testing.T) {
	stage := createTriggerStage()
	sys := NewTriggerSystem(createTestPhysicsConfig(), stage, entity.CenteredHitbox(4, 14))

	wide := createTestPhysicsConfig()
	wide.Player.HitboxWidth = 24
	sys.SetConfig(wide)

	// The raindrop is one cell to the right of the player's centre; only
	// the wider body reaches it.
	player := entity.NewPlayer(44, 24, entity.CenteredHitbox(24, 14))
	hits := sys.Check(player)

	require.Len(t, hits, 1)
	assert.Equal(t, TriggerRaindrop, hits[0].Kind)
}
