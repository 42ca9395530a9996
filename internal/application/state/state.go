package state

// GameState represents the phase a level session is in
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateDying
	StateLevelComplete
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateDying:
		return "Dying"
	case StateLevelComplete:
		return "LevelComplete"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the world advances in this state.
func (s GameState) Simulating() bool {
	return s == StatePlaying || s == StateDying
}
