package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

func TestLoadStage(t *testing.T) {
	t.Run("loads basic stage", func(t *testing.T) {
		cfg := &config.StageConfig{
			Name:     "Room",
			ParTime:  30,
			TileSize: 16,
			Map: `
###
#@#
###
`,
		}

		stage := LoadStage(cfg)

		require.NotNil(t, stage)
		assert.Equal(t, "Room", stage.Name)
		assert.Equal(t, 30, stage.ParTime)
		assert.Equal(t, 3, stage.Width)
		assert.Equal(t, 3, stage.Height)
		assert.Equal(t, 16, stage.TileSize)
		assert.Equal(t, 24.0, stage.SpawnX)
		assert.Equal(t, 24.0, stage.SpawnY)
		assert.Equal(t, entity.TileEmpty, stage.Tiles[1][1].Type, "spawn cell is empty")
	})

	t.Run("maps terrain glyphs", func(t *testing.T) {
		stage := LoadStage(&config.StageConfig{TileSize: 16, Map: "#DSP^."})

		tests := []struct {
			x      int
			typ    entity.TileType
			solid  bool
			deadly bool
		}{
			{0, entity.TileGround, true, false},
			{1, entity.TileDirt, true, false},
			{2, entity.TileStone, true, false},
			{3, entity.TilePlatform, false, false},
			{4, entity.TileSpike, false, true},
			{5, entity.TileEmpty, false, false},
		}
		for _, tt := range tests {
			tile := stage.Tiles[0][tt.x]
			assert.Equal(t, tt.typ, tile.Type, "column %d", tt.x)
			assert.Equal(t, tt.solid, tile.Solid, "column %d", tt.x)
			assert.Equal(t, tt.deadly, tile.Deadly, "column %d", tt.x)
		}
	})

	t.Run("places objects at cell centres", func(t *testing.T) {
		cfg := &config.StageConfig{
			TileSize: 16,
			Map: `
.H..H
C.r*F
#####
`,
		}

		stage := LoadStage(cfg)

		require.Len(t, stage.Anchors, 2)
		assert.Equal(t, entity.Anchor{X: 24, Y: 8}, stage.Anchors[0])
		assert.Equal(t, entity.Anchor{X: 72, Y: 8}, stage.Anchors[1])
		assert.Equal(t, []entity.Marker{{X: 8, Y: 24}}, stage.Checkpoints)
		assert.Equal(t, []entity.Marker{{X: 40, Y: 24}}, stage.Raindrops)
		assert.Equal(t, []entity.Marker{{X: 56, Y: 24}}, stage.Secrets)
		require.NotNil(t, stage.Finish)
		assert.Equal(t, entity.Marker{X: 72, Y: 24}, *stage.Finish)
	})

	t.Run("numbers anchors row-major", func(t *testing.T) {
		stage := LoadStage(&config.StageConfig{TileSize: 10, Map: "..H\nH..\n.H."})

		require.Len(t, stage.Anchors, 3)
		assert.Equal(t, 25.0, stage.Anchors[0].X)
		assert.Equal(t, 5.0, stage.Anchors[1].X)
		assert.Equal(t, 15.0, stage.Anchors[2].X)
	})

	t.Run("ragged rows are padded", func(t *testing.T) {
		stage := LoadStage(&config.StageConfig{TileSize: 16, Map: "#\n###"})

		assert.Equal(t, 3, stage.Width)
		require.Len(t, stage.Tiles[0], 3)
		assert.False(t, stage.Tiles[0][2].Solid)
	})

	t.Run("enemies leave their cell empty", func(t *testing.T) {
		stage := LoadStage(&config.StageConfig{TileSize: 16, Map: "12?"})

		for x := 0; x < 3; x++ {
			assert.Equal(t, entity.Tile{}, stage.Tiles[0][x])
		}
		assert.Equal(t, []entity.Enemy{
			{X: 8, Y: 8, Kind: entity.EnemySlime},
			{X: 24, Y: 8, Kind: entity.EnemyBug},
		}, stage.Enemies)
	})

	t.Run("defaults", func(t *testing.T) {
		stage := LoadStage(&config.StageConfig{Map: "..\n.."})

		assert.Equal(t, config.DefaultTileSize, stage.TileSize)
		assert.Equal(t, 8.0, stage.SpawnX)
		assert.Equal(t, 8.0, stage.SpawnY)
		assert.Nil(t, stage.Finish)
		assert.Empty(t, stage.Anchors)
	})
}
