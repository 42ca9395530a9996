package playing

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/younwookim/raincoat/internal/application/system"
	"github.com/younwookim/raincoat/internal/domain/entity"
)

const (
	pulseScale = 1.8
	deathRise  = 24 // px the body floats up while dying
)

// effects drives the cosmetic tweens. Nothing here feeds back into the
// simulation.
type effects struct {
	hook  *gween.Tween
	pulse *gween.Sequence
	death *gween.Tween

	hookProgress float32 // 0 at the player, 1 at the anchor
	anchorScale  float32
	deathOffset  float32
}

func newEffects() *effects {
	return &effects{anchorScale: 1}
}

// observe starts tweens for the cues of one tick.
func (e *effects) observe(report system.TickReport, player *entity.Player, deathDuration float64) {
	for _, cue := range report.Cues {
		switch cue {
		case system.CueHookFire:
			e.hookProgress = 0
			e.hook = gween.New(0, 1, float32(player.FlightDuration/1000), ease.OutQuad)
		case system.CueHookAttach:
			e.hook = nil
			e.hookProgress = 1
			e.pulse = gween.NewSequence(
				gween.New(1, pulseScale, 0.12, ease.OutQuad),
				gween.New(pulseScale, 1, 0.3, ease.InOutSine),
			)
		case system.CueDeath:
			e.deathOffset = 0
			e.death = gween.New(0, -deathRise, float32(deathDuration/1000), ease.OutCubic)
		}
	}
	if !player.IsDead {
		e.death = nil
		e.deathOffset = 0
	}
	if player.HookState != entity.HookFiring {
		e.hook = nil
	}
}

func (e *effects) update(dt float64) {
	step := float32(dt)
	if e.hook != nil {
		e.hookProgress, _ = e.hook.Update(step)
	}
	if e.pulse != nil {
		var done bool
		e.anchorScale, _, done = e.pulse.Update(step)
		if done {
			e.pulse = nil
			e.anchorScale = 1
		}
	}
	if e.death != nil {
		e.deathOffset, _ = e.death.Update(step)
	}
}
