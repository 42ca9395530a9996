package config

import (
	"fmt"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Tile layer and object groups read from TMX stages.
const (
	tmxCollisionLayer = "collision"
	tmxKindProperty   = "kind"
)

// tmxTileGlyphs maps a tileset tile's "kind" property to its map glyph.
var tmxTileGlyphs = map[string]byte{
	"ground":   '#',
	"dirt":     'D',
	"stone":    'S',
	"platform": 'P',
	"spikes":   '^',
}

// tmxObjectGlyphs maps an object group name to the glyph its objects become.
var tmxObjectGlyphs = map[string]byte{
	"spawn":       '@',
	"anchors":     'H',
	"checkpoints": 'C',
	"finish":      'F',
	"raindrops":   'r',
	"secrets":     '*',
	"slimes":      '1',
	"bugs":        '2',
}

// LoadTMX imports a Tiled map and renders it into the ASCII level format.
// Objects snap to the cell that contains them.
func (l *Loader) LoadTMX(tmxPath string) (*StageConfig, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("failed to load TMX %s: tiles must be square, got %dx%d",
			tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	grid := make([][]byte, levelMap.Height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", levelMap.Width))
	}

	found := false
	for _, layer := range levelMap.Layers {
		if layer.Name != tmxCollisionLayer {
			continue
		}
		found = true
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				kind := "ground"
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if k := tilesetTile.Properties.GetString(tmxKindProperty); k != "" {
						kind = k
					}
				}
				glyph, ok := tmxTileGlyphs[kind]
				if !ok {
					return nil, fmt.Errorf("failed to load TMX %s: unknown tile kind %q at %d,%d", tmxPath, kind, x, y)
				}
				grid[y][x] = glyph
			}
		}
		break
	}
	if !found {
		return nil, fmt.Errorf("failed to load TMX %s: missing %q layer", tmxPath, tmxCollisionLayer)
	}

	for _, og := range levelMap.ObjectGroups {
		glyph, ok := tmxObjectGlyphs[og.Name]
		if !ok {
			continue
		}
		for _, o := range og.Objects {
			tx := int(o.X) / levelMap.TileWidth
			ty := int(o.Y) / levelMap.TileHeight
			if tx < 0 || tx >= levelMap.Width || ty < 0 || ty >= levelMap.Height {
				return nil, fmt.Errorf("failed to load TMX %s: %s object at %.0f,%.0f is outside the map",
					tmxPath, og.Name, o.X, o.Y)
			}
			grid[ty][tx] = glyph
		}
	}

	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = string(row)
	}

	return &StageConfig{
		TileSize: levelMap.TileWidth,
		Map:      strings.Join(rows, "\n"),
	}, nil
}
