package config

// PhysicsConfig is the root config for physics.json.
// Durations are milliseconds, distances pixels, speeds pixels per second.
type PhysicsConfig struct {
	Display  DisplayConfig   `json:"display"`
	Physics  PhysicsSettings `json:"physics"`
	Player   PlayerConfig    `json:"player"`
	Movement MovementConfig  `json:"movement"`
	Jump     JumpConfig      `json:"jump"`
	Hook     HookConfig      `json:"hook"`
	Swing    SwingConfig     `json:"swing"`
	Combat   CombatConfig    `json:"combat"`
	Camera   CameraConfig    `json:"camera"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed"`
	// KillMargin is how far below the stage the player may fall before dying.
	KillMargin float64 `json:"killMargin"`
	// CornerCorrection is how many pixels a head bump may be nudged sideways.
	CornerCorrection int `json:"cornerCorrection"`
}

type PlayerConfig struct {
	HitboxWidth  float64 `json:"hitboxWidth"`
	HitboxHeight float64 `json:"hitboxHeight"`
}

type MovementConfig struct {
	MoveSpeed float64 `json:"moveSpeed"`
}

type JumpConfig struct {
	// Force is the vertical velocity set on jump; negative is upward.
	Force       float64 `json:"force"`
	MaxHoldTime float64 `json:"maxHoldTime"`
	// HoldDamping multiplies upward velocity each tick while the button is held.
	HoldDamping float64 `json:"holdDamping"`
	// ShortHopThreshold is the upward speed above which releasing the button cuts the jump.
	ShortHopThreshold float64 `json:"shortHopThreshold"`
	ShortHopFactor    float64 `json:"shortHopFactor"`
	CoyoteTime        float64 `json:"coyoteTime"`
	JumpBuffer        float64 `json:"jumpBuffer"`
}

type HookConfig struct {
	MaxLength float64 `json:"maxLength"`
	// Speed is the projectile speed used to time the flight phase.
	Speed    float64 `json:"speed"`
	Cooldown float64 `json:"cooldown"`
	// ConeDot is the minimum dot product between aim and anchor direction.
	ConeDot      float64 `json:"coneDot"`
	AimDeadzone  float64 `json:"aimDeadzone"`
	DefaultAimUp float64 `json:"defaultAimUp"`
}

type SwingConfig struct {
	Gravity      float64 `json:"gravity"`
	Damping      float64 `json:"damping"`
	Acceleration float64 `json:"acceleration"`
	MaxSpeed     float64 `json:"maxSpeed"`
	// AttachScale converts tangential px/s into radians per tick on attach.
	AttachScale float64 `json:"attachScale"`
	// AttachLimit bounds the seeded angular velocity as a fraction of MaxSpeed.
	AttachLimit       float64 `json:"attachLimit"`
	ReelRate          float64 `json:"reelRate"`
	ReelStopLength    float64 `json:"reelStopLength"`
	AutoReleaseLength float64 `json:"autoReleaseLength"`
	ReleaseScale      float64 `json:"releaseScale"`
	ReleaseLift       float64 `json:"releaseLift"`
	// ReleaseMinUpward caps the release vertical velocity; it is never above this.
	ReleaseMinUpward float64 `json:"releaseMinUpward"`
	TickRate         float64 `json:"tickRate"`
}

type CombatConfig struct {
	HurtDuration   float64 `json:"hurtDuration"`
	KnockbackX     float64 `json:"knockbackX"`
	KnockbackY     float64 `json:"knockbackY"`
	DeathDuration  float64 `json:"deathDuration"`
	CheckpointLift float64 `json:"checkpointLift"`
	StompBounce    float64 `json:"stompBounce"`
	StompMargin    float64 `json:"stompMargin"`
}

type CameraConfig struct {
	FollowLerp float64 `json:"followLerp"`
	DeadzoneX  float64 `json:"deadzoneX"`
}
