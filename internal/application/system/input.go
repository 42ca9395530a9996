package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// InputSystem reads keyboard and mouse state from ebiten
type InputSystem struct {
	config *config.PhysicsConfig
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg *config.PhysicsConfig) *InputSystem {
	return &InputSystem{config: cfg}
}

// InputState holds the input for one tick.
// Held flags are level-triggered; *Pressed flags are true only on the tick
// the key went down.
type InputState struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Jump  bool

	JumpPressed    bool
	FirePressed    bool
	CancelPressed  bool
	HookPressed    bool // fires when ready, cancels otherwise
	ReleasePressed bool
	RestartPressed bool
	PausePressed   bool

	// World-space aim point; ignored unless AimActive.
	AimX, AimY float64
	AimActive  bool
}

// HasDirection reports whether any directional key is held.
func (in InputState) HasDirection() bool {
	return in.Left || in.Right || in.Up || in.Down
}

// GetInput reads the current input state. camX, camY is the world position
// of the screen's top-left corner, used to place the cursor in the world.
func (s *InputSystem) GetInput(camX, camY float64) InputState {
	mx, my := ebiten.CursorPosition()
	space := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)

	return InputState{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:    up,
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Jump:  up || ebiten.IsKeyPressed(ebiten.KeySpace),

		JumpPressed: space ||
			inpututil.IsKeyJustPressed(ebiten.KeyW) ||
			inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		FirePressed:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		CancelPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		HookPressed:    inpututil.IsKeyJustPressed(ebiten.KeyE),
		ReleasePressed: space,
		RestartPressed: inpututil.IsKeyJustPressed(ebiten.KeyR),
		PausePressed:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),

		AimX:      float64(mx) + camX,
		AimY:      float64(my) + camY,
		AimActive: true,
	}
}
