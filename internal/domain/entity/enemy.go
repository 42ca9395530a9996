package entity

// EnemyKind selects how an enemy is drawn. Every kind hurts on contact and
// can be stomped from above.
type EnemyKind int

const (
	EnemySlime EnemyKind = iota
	EnemyBug
)

// Enemy body size. The body sits at the bottom of its cell, one pixel in
// from each side.
const (
	EnemyWidth  = 14
	EnemyHeight = 12
)

// Enemy is a stationary contact hazard. X, Y is its cell centre.
type Enemy struct {
	X, Y float64
	Kind EnemyKind
}

// Box returns the enemy body in world pixels for a stage of the given tile
// size.
func (e Enemy) Box(tileSize int) (x, y, w, h float64) {
	half := float64(tileSize) / 2
	return e.X - EnemyWidth/2, e.Y + half - EnemyHeight, EnemyWidth, EnemyHeight
}
