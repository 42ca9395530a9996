package entity

// HookState is the grappling hook's state machine.
type HookState int

const (
	HookReady HookState = iota
	HookFiring
	HookAttached
	HookCooldown
)

func (s HookState) String() string {
	switch s {
	case HookReady:
		return "Ready"
	case HookFiring:
		return "Firing"
	case HookAttached:
		return "Attached"
	case HookCooldown:
		return "Cooldown"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the four defined states.
func (s HookState) Valid() bool {
	return s >= HookReady && s <= HookCooldown
}
