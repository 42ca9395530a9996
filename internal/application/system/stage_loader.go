package system

import (
	"strings"

	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// tileGlyphs maps map characters to terrain tiles.
var tileGlyphs = map[rune]entity.Tile{
	'#': {Type: entity.TileGround, Solid: true},
	'D': {Type: entity.TileDirt, Solid: true},
	'S': {Type: entity.TileStone, Solid: true},
	'P': {Type: entity.TilePlatform},
	'^': {Type: entity.TileSpike, Deadly: true},
}

// LoadStage converts a StageConfig into a Stage entity. Objects sit at the
// centre of their cell and leave the cell itself empty. Anchors are
// numbered in row-major order.
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	tileSize := cfg.TileSize
	if tileSize <= 0 {
		tileSize = config.DefaultTileSize
	}
	rows := mapRows(cfg.Map)

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	stage := &entity.Stage{
		Name:     cfg.Name,
		ParTime:  cfg.ParTime,
		Tips:     cfg.Tips,
		Width:    width,
		Height:   len(rows),
		TileSize: tileSize,
		Tiles:    make([][]entity.Tile, len(rows)),
		SpawnX:   float64(tileSize) / 2,
		SpawnY:   float64(tileSize) / 2,
	}

	half := float64(tileSize) / 2
	for y, row := range rows {
		stage.Tiles[y] = make([]entity.Tile, width)
		for x, char := range row {
			if tile, ok := tileGlyphs[char]; ok {
				stage.Tiles[y][x] = tile
				continue
			}

			cx := float64(x*tileSize) + half
			cy := float64(y*tileSize) + half
			switch char {
			case '@':
				stage.SpawnX, stage.SpawnY = cx, cy
			case 'H':
				stage.Anchors = append(stage.Anchors, entity.Anchor{X: cx, Y: cy})
			case 'C':
				stage.Checkpoints = append(stage.Checkpoints, entity.Marker{X: cx, Y: cy})
			case 'F':
				stage.Finish = &entity.Marker{X: cx, Y: cy}
			case 'r':
				stage.Raindrops = append(stage.Raindrops, entity.Marker{X: cx, Y: cy})
			case '*':
				stage.Secrets = append(stage.Secrets, entity.Marker{X: cx, Y: cy})
			case '1':
				stage.Enemies = append(stage.Enemies, entity.Enemy{X: cx, Y: cy, Kind: entity.EnemySlime})
			case '2':
				stage.Enemies = append(stage.Enemies, entity.Enemy{X: cx, Y: cy, Kind: entity.EnemyBug})
			}
		}
	}

	return stage
}

// mapRows splits an ASCII map into rows, dropping blank leading and
// trailing lines and surrounding whitespace.
func mapRows(m string) []string {
	lines := strings.Split(strings.TrimSpace(m), "\n")
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.TrimSpace(line))
	}
	return rows
}
