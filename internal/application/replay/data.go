package replay

import "github.com/younwookim/raincoat/internal/application/system"

// FormatVersion is written into every recording.
const FormatVersion = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	L  bool    `json:"l,omitempty"`  // Left
	R  bool    `json:"r,omitempty"`  // Right
	U  bool    `json:"u,omitempty"`  // Up
	D  bool    `json:"d,omitempty"`  // Down
	J  bool    `json:"j,omitempty"`  // Jump held
	JP bool    `json:"jp,omitempty"` // JumpPressed
	FP bool    `json:"fp,omitempty"` // FirePressed
	CP bool    `json:"cp,omitempty"` // CancelPressed
	HP bool    `json:"hp,omitempty"` // HookPressed
	RP bool    `json:"rp,omitempty"` // ReleasePressed
	RS bool    `json:"rs,omitempty"` // RestartPressed
	PS bool    `json:"ps,omitempty"` // PausePressed
	AX float64 `json:"ax,omitempty"` // Aim point X (world)
	AY float64 `json:"ay,omitempty"` // Aim point Y (world)
	AA bool    `json:"aa,omitempty"` // AimActive
}

// ReplayData contains all data needed to replay a level session.
// The simulation is deterministic, so inputs and the tick rate are enough.
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level"`
	Framerate int          `json:"framerate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// NewFrame encodes one tick of input.
func NewFrame(frame int, in system.InputState) FrameInput {
	return FrameInput{
		F:  frame,
		L:  in.Left,
		R:  in.Right,
		U:  in.Up,
		D:  in.Down,
		J:  in.Jump,
		JP: in.JumpPressed,
		FP: in.FirePressed,
		CP: in.CancelPressed,
		HP: in.HookPressed,
		RP: in.ReleasePressed,
		RS: in.RestartPressed,
		PS: in.PausePressed,
		AX: in.AimX,
		AY: in.AimY,
		AA: in.AimActive,
	}
}

// Input decodes the frame back into controller input.
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Left:           fi.L,
		Right:          fi.R,
		Up:             fi.U,
		Down:           fi.D,
		Jump:           fi.J,
		JumpPressed:    fi.JP,
		FirePressed:    fi.FP,
		CancelPressed:  fi.CP,
		HookPressed:    fi.HP,
		ReleasePressed: fi.RP,
		RestartPressed: fi.RS,
		PausePressed:   fi.PS,
		AimX:           fi.AX,
		AimY:           fi.AY,
		AimActive:      fi.AA,
	}
}
