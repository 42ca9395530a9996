package entity

import "math"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileGround
	TileDirt
	TileStone
	TilePlatform
	TileSpike
)

// Tile represents a single tile in the stage
type Tile struct {
	Type   TileType
	Solid  bool
	Deadly bool
}

// AnchorID indexes the stage's anchor table.
type AnchorID int

// NoAnchor marks an unset anchor reference.
const NoAnchor AnchorID = -1

// Anchor is a fixed hook point owned by the stage.
// The hook controller only reads its position and toggles Highlighted.
type Anchor struct {
	X, Y        float64
	Highlighted bool
}

// Marker is a point-like stage object (checkpoint, pickup, finish).
type Marker struct {
	X, Y float64
}

// Stage represents the current stage's tile data and static objects.
// Object positions are tile centres in pixels.
type Stage struct {
	Name     string
	ParTime  int
	Tips     []string
	Width    int // tiles
	Height   int // tiles
	TileSize int
	Tiles    [][]Tile
	SpawnX   float64
	SpawnY   float64

	Anchors     []Anchor
	Checkpoints []Marker
	Raindrops   []Marker
	Secrets     []Marker
	Enemies     []Enemy
	Finish      *Marker
}

// GetTile returns the tile at the given tile coordinates.
// Columns outside the stage are walls; rows above and below are open so
// the player can jump off the top of the screen or fall out of the level.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width {
		return Tile{Type: TileStone, Solid: true}
	}
	if ty < 0 || ty >= s.Height {
		return Tile{Type: TileEmpty}
	}
	return s.Tiles[ty][tx]
}

// GetTileAtPixel returns the tile at the given pixel coordinates
func (s *Stage) GetTileAtPixel(px, py float64) Tile {
	return s.GetTile(floorDiv(px, s.TileSize), floorDiv(py, s.TileSize))
}

// IsSolidAt checks if the tile at pixel coordinates is solid
func (s *Stage) IsSolidAt(px, py float64) bool {
	return s.GetTileAtPixel(px, py).Solid
}

// PixelWidth returns the stage width in pixels.
func (s *Stage) PixelWidth() float64 {
	return float64(s.Width * s.TileSize)
}

// PixelHeight returns the stage height in pixels.
func (s *Stage) PixelHeight() float64 {
	return float64(s.Height * s.TileSize)
}

// Anchor returns the anchor for id, or false when id does not resolve.
func (s *Stage) Anchor(id AnchorID) (Anchor, bool) {
	return LookupAnchor(s.Anchors, id)
}

// LookupAnchor resolves id against an anchor table.
func LookupAnchor(anchors []Anchor, id AnchorID) (Anchor, bool) {
	if id < 0 || int(id) >= len(anchors) {
		return Anchor{}, false
	}
	return anchors[id], true
}

// ClearHighlights resets every anchor's highlight flag.
func (s *Stage) ClearHighlights() {
	for i := range s.Anchors {
		s.Anchors[i].Highlighted = false
	}
}

func floorDiv(p float64, size int) int {
	return int(math.Floor(p / float64(size)))
}
