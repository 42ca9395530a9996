package system

// Cue is a one-shot event for audio, particles and animation.
type Cue int

const (
	CueJump Cue = iota
	CueLand
	CueHookFire
	CueHookAttach
	CueHookRelease
	CueHurt
	CueDeath
	CueStomp
	CueCheckpoint
	CueCollect
	CueSecret
	CueLevelComplete
)

var cueNames = [...]string{
	CueJump:          "jump",
	CueLand:          "land",
	CueHookFire:      "hookFire",
	CueHookAttach:    "hookAttach",
	CueHookRelease:   "hookRelease",
	CueHurt:          "hurt",
	CueDeath:         "death",
	CueStomp:         "stomp",
	CueCheckpoint:    "checkpoint",
	CueCollect:       "collect",
	CueSecret:        "secret",
	CueLevelComplete: "levelComplete",
}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// CueSink receives cues. Play must not block the simulation.
type CueSink interface {
	Play(cue Cue)
}

// CueLog is a CueSink that keeps every cue it receives.
type CueLog struct {
	Cues []Cue
}

// Play implements CueSink
func (l *CueLog) Play(cue Cue) {
	l.Cues = append(l.Cues, cue)
}

// Count returns how many times cue was played.
func (l *CueLog) Count(cue Cue) int {
	n := 0
	for _, c := range l.Cues {
		if c == cue {
			n++
		}
	}
	return n
}

// TickReport is everything a controller call produced besides the player
// state itself.
type TickReport struct {
	Cues []Cue
	// Combo is the player's hook combo after the call; ComboChanged is set
	// whenever it moved.
	Combo        int
	ComboChanged bool
	// RespawnDue is set on every dead tick once the death timer has run out.
	RespawnDue bool
}

func (r *TickReport) emit(cue Cue) {
	r.Cues = append(r.Cues, cue)
}

func (r *TickReport) setCombo(combo int) {
	r.Combo = combo
	r.ComboChanged = true
}

// Has reports whether cue was emitted.
func (r *TickReport) Has(cue Cue) bool {
	for _, c := range r.Cues {
		if c == cue {
			return true
		}
	}
	return false
}

// Merge appends other's cues and takes its combo and respawn results.
func (r *TickReport) Merge(other TickReport) {
	r.Cues = append(r.Cues, other.Cues...)
	if other.ComboChanged {
		r.setCombo(other.Combo)
	}
	r.RespawnDue = r.RespawnDue || other.RespawnDue
}

// Dispatch plays every cue on sink in order.
func (r *TickReport) Dispatch(sink CueSink) {
	if sink == nil {
		return
	}
	for _, c := range r.Cues {
		sink.Play(c)
	}
}
