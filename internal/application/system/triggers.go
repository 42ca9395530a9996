package system

import (
	"github.com/solarlune/resolv"
	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// TriggerKind identifies what the player touched.
type TriggerKind int

const (
	TriggerSpike TriggerKind = iota
	TriggerCheckpoint
	TriggerFinish
	TriggerRaindrop
	TriggerSecret
	TriggerEnemy
)

const (
	tagSpike      = "spike"
	tagCheckpoint = "checkpoint"
	tagFinish     = "finish"
	tagRaindrop   = "raindrop"
	tagSecret     = "secret"
	tagEnemy      = "enemy"
)

// pickupSize is the side of a raindrop or secret trigger box.
const pickupSize = 10

// TriggerHit is one trigger overlapped this tick. Index is the marker's
// position in its stage slice; X, Y is the marker centre.
type TriggerHit struct {
	Kind  TriggerKind
	Index int
	X, Y  float64
}

type triggerData struct {
	kind  TriggerKind
	index int
	x, y  float64
}

// TriggerSystem finds the stage objects the player overlaps. Checkpoints,
// pickups and the finish fire once and are then removed. Spikes stay, and
// enemies stay until Defeat.
type TriggerSystem struct {
	config *config.PhysicsConfig
	stage  *entity.Stage
	space  *resolv.Space
	actor  *resolv.Object
}

// NewTriggerSystem builds the trigger space for a stage
func NewTriggerSystem(cfg *config.PhysicsConfig, stage *entity.Stage, hitbox entity.HitboxRect) *TriggerSystem {
	ts := stage.TileSize
	if ts <= 0 {
		ts = config.DefaultTileSize
	}
	space := resolv.NewSpace(max(stage.Width*ts, ts), max(stage.Height*ts, ts), ts, ts)
	s := &TriggerSystem{
		config: cfg,
		stage:  stage,
		space:  space,
	}

	tile := float64(ts)
	for ty, row := range stage.Tiles {
		for tx, t := range row {
			if !t.Deadly {
				continue
			}
			// Only the pointed half of a spike tile hurts.
			x, y := float64(tx)*tile, float64(ty)*tile+tile/2
			s.add(x, y, tile, tile/2, tagSpike, triggerData{kind: TriggerSpike, index: ty*stage.Width + tx, x: x + tile/2, y: y})
		}
	}
	for i, m := range stage.Checkpoints {
		s.addMarker(m, tile, tile, tagCheckpoint, TriggerCheckpoint, i)
	}
	for i, m := range stage.Raindrops {
		s.addMarker(m, pickupSize, pickupSize, tagRaindrop, TriggerRaindrop, i)
	}
	for i, m := range stage.Secrets {
		s.addMarker(m, pickupSize, pickupSize, tagSecret, TriggerSecret, i)
	}
	for i, e := range stage.Enemies {
		x, y, w, h := e.Box(ts)
		s.add(x, y, w, h, tagEnemy, triggerData{kind: TriggerEnemy, index: i, x: e.X, y: e.Y})
	}
	if f := stage.Finish; f != nil {
		// The flag pole reaches one tile above its cell.
		s.add(f.X-tile/2, f.Y-tile*1.5, tile, tile*2, tagFinish, triggerData{kind: TriggerFinish, x: f.X, y: f.Y})
	}

	s.setActor(hitbox)
	return s
}

// setActor replaces the player's object with one sized to hitbox.
func (s *TriggerSystem) setActor(hitbox entity.HitboxRect) {
	if s.actor != nil {
		s.space.Remove(s.actor)
	}
	s.actor = resolv.NewObject(0, 0, hitbox.Width, hitbox.Height, "player")
	s.actor.SetShape(resolv.NewRectangle(0, 0, hitbox.Width, hitbox.Height))
	s.space.Add(s.actor)
}

func (s *TriggerSystem) addMarker(m entity.Marker, w, h float64, tag string, kind TriggerKind, index int) {
	s.add(m.X-w/2, m.Y-h/2, w, h, tag, triggerData{kind: kind, index: index, x: m.X, y: m.Y})
}

func (s *TriggerSystem) add(x, y, w, h float64, tag string, data triggerData) {
	obj := resolv.NewObject(x, y, w, h, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = data
	s.space.Add(obj)
}

// Check returns every trigger the player's hitbox overlaps.
func (s *TriggerSystem) Check(player *entity.Player) []TriggerHit {
	x, y, w, h := player.Hitbox.GetWorldRect(player.X, player.Y)
	s.actor.X, s.actor.Y = x, y
	s.actor.Update()

	check := s.actor.Check(0, 0, tagSpike, tagCheckpoint, tagFinish, tagRaindrop, tagSecret, tagEnemy)
	if check == nil {
		return nil
	}

	var hits []TriggerHit
	for _, obj := range check.Objects {
		if !overlaps(x, y, w, h, obj.X, obj.Y, obj.W, obj.H) {
			continue
		}
		data, ok := obj.Data.(triggerData)
		if !ok {
			continue
		}
		hits = append(hits, TriggerHit{Kind: data.kind, Index: data.index, X: data.x, Y: data.y})
		if data.kind != TriggerSpike && data.kind != TriggerEnemy {
			s.space.Remove(obj)
		}
	}
	return hits
}

// Defeat removes enemy index from the stage. It reports false when that
// enemy is already gone.
func (s *TriggerSystem) Defeat(index int) bool {
	for _, obj := range s.space.Objects() {
		if data, ok := obj.Data.(triggerData); ok && data.kind == TriggerEnemy && data.index == index {
			s.space.Remove(obj)
			return true
		}
	}
	return false
}

// SetConfig swaps the tuning without re-arming collected triggers. The
// player's object is resized to the new hitbox.
func (s *TriggerSystem) SetConfig(cfg *config.PhysicsConfig) {
	s.config = cfg
	s.setActor(entity.CenteredHitbox(cfg.Player.HitboxWidth, cfg.Player.HitboxHeight))
}

// OutOfBounds reports whether the player fell past the bottom of the stage.
func (s *TriggerSystem) OutOfBounds(player *entity.Player) bool {
	return player.Y > s.stage.PixelHeight()+s.config.Physics.KillMargin
}

// Remaining returns how many triggers of kind are still armed.
func (s *TriggerSystem) Remaining(kind TriggerKind) int {
	n := 0
	for _, obj := range s.space.Objects() {
		if data, ok := obj.Data.(triggerData); ok && data.kind == kind {
			n++
		}
	}
	return n
}

func overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}
