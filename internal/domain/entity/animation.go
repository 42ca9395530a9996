package entity

import "math"

// Animation is the sprite key the renderer should play.
type Animation int

const (
	AnimIdle Animation = iota
	AnimRun
	AnimJump
	AnimFall
	AnimHook
	AnimHurt
)

// runThreshold is the horizontal speed (px/s) above which the player runs.
const runThreshold = 10

func (a Animation) String() string {
	switch a {
	case AnimIdle:
		return "idle"
	case AnimRun:
		return "run"
	case AnimJump:
		return "jump"
	case AnimFall:
		return "fall"
	case AnimHook:
		return "hook"
	case AnimHurt:
		return "hurt"
	default:
		return "unknown"
	}
}

// DeriveAnimation picks the animation for the player's current state.
// It reads p and never modifies it.
func DeriveAnimation(p *Player) Animation {
	switch {
	case p.IsDead || p.IsHurt:
		return AnimHurt
	case p.HookState == HookFiring || p.HookState == HookAttached:
		return AnimHook
	case !p.OnGround:
		if p.VY < 0 {
			return AnimJump
		}
		return AnimFall
	case math.Abs(p.VX) > runThreshold:
		return AnimRun
	default:
		return AnimIdle
	}
}
