package entity

// Body represents the physical body of an entity.
// X, Y is the centre of the body in pixels; velocity is pixels per second.
type Body struct {
	X, Y   float64
	VX, VY float64

	OnGround     bool
	WasOnGround  bool
	OnCeiling    bool
	BlockedLeft  bool
	BlockedRight bool
	FacingRight  bool

	// GravityEnabled is cleared while the body hangs from a rope.
	GravityEnabled bool
	// Kinematic bodies have their position set directly. The physics host
	// does not integrate them; it sweeps them from PrevX, PrevY to X, Y and
	// sets Obstructed when a solid tile cut the move short.
	Kinematic  bool
	Obstructed bool

	// PrevX, PrevY is where the physics host last left the body.
	PrevX, PrevY float64
}

// HitboxRect is a collision rectangle relative to the body centre.
type HitboxRect struct {
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// GetWorldRect returns the hitbox rect in world coordinates
func (hr HitboxRect) GetWorldRect(bodyX, bodyY float64) (x, y, w, h float64) {
	return bodyX + hr.OffsetX, bodyY + hr.OffsetY, hr.Width, hr.Height
}

// CenteredHitbox builds a w×h hitbox centred on the body.
func CenteredHitbox(w, h float64) HitboxRect {
	return HitboxRect{OffsetX: -w / 2, OffsetY: -h / 2, Width: w, Height: h}
}

// Player is the single mutable state record advanced by the controller.
type Player struct {
	Body
	Hitbox HitboxRect

	IsDead     bool
	IsHurt     bool
	HurtTimer  float64 // ms
	DeathTimer float64 // ms

	// Jump
	IsJumping       bool
	JumpHoldTime    float64 // ms since the jump started
	CoyoteTimer     float64 // ms
	JumpBufferTimer float64 // ms

	// Hook
	HookState         HookState
	HookAnchor        AnchorID
	FlightTimer       float64 // ms left before the hook reaches its anchor
	FlightDuration    float64 // ms
	HookCooldownTimer float64 // ms
	AimX, AimY        float64

	// Swing, valid only while HookState == HookAttached
	RopeLength           float64
	SwingAngle           float64 // radians from vertical
	SwingAngularVelocity float64 // radians per tick

	GroundTouchesSinceHook int
	HookCombo              int
}

// NewPlayer creates a player at the given pixel position with every timer
// cleared and the hook ready.
func NewPlayer(x, y float64, hitbox HitboxRect) *Player {
	return &Player{
		Body: Body{
			X:              x,
			Y:              y,
			PrevX:          x,
			PrevY:          y,
			FacingRight:    true,
			GravityEnabled: true,
		},
		Hitbox:     hitbox,
		HookState:  HookReady,
		HookAnchor: NoAnchor,
		AimX:       1,
	}
}

// Reset reinitialises the whole record at a new position.
func (p *Player) Reset(x, y float64) {
	*p = *NewPlayer(x, y, p.Hitbox)
}

// IsSwinging reports whether the player hangs from an anchor.
func (p *Player) IsSwinging() bool {
	return p.HookState == HookAttached
}

// Airborne reports whether the player is off the ground.
func (p *Player) Airborne() bool {
	return !p.OnGround
}
