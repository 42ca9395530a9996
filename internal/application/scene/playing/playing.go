// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/younwookim/raincoat/internal/application/scene"
	"github.com/younwookim/raincoat/internal/application/state"
	"github.com/younwookim/raincoat/internal/application/system"
	"github.com/younwookim/raincoat/internal/domain/entity"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorGround     = color.RGBA{74, 124, 89, 255}
	colorDirt       = color.RGBA{110, 80, 55, 255}
	colorStone      = color.RGBA{90, 90, 110, 255}
	colorPlatform   = color.RGBA{140, 110, 70, 255}
	colorSpike      = color.RGBA{200, 50, 50, 255}
	colorAnchor     = color.RGBA{180, 180, 200, 255}
	colorAnchorLit  = color.RGBA{255, 220, 90, 255}
	colorRope       = color.RGBA{230, 230, 230, 255}
	colorAim        = color.RGBA{255, 255, 255, 90}
	colorPlayer     = color.RGBA{240, 200, 60, 255}
	colorHurt       = color.RGBA{255, 255, 255, 220}
	colorDrop       = color.RGBA{90, 170, 255, 255}
	colorSecret     = color.RGBA{220, 120, 255, 255}
	colorCheckpoint = color.RGBA{120, 220, 140, 255}
	colorFinish     = color.RGBA{255, 255, 255, 255}
	colorSlime      = color.RGBA{153, 60, 172, 255}
	colorBug        = color.RGBA{34, 139, 34, 255}
)

// muter is a cue sink that can be switched off
type muter interface {
	Toggle() bool
}

// Playing is the main gameplay scene
type Playing struct {
	session     *Session
	inputSystem *system.InputSystem
	sink        system.CueSink
	camera      Camera
	fx          *effects
	screenW     int
	screenH     int
	next        func() scene.Scene

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene.
// If recordPath is not empty, gameplay will be recorded.
func New(cfg *config.PhysicsConfig, stageCfg *config.StageConfig, sink system.CueSink, recordPath string) *Playing {
	p := &Playing{
		session:        NewSession(cfg, stageCfg),
		inputSystem:    system.NewInputSystem(cfg),
		sink:           sink,
		fx:             newEffects(),
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		recordFilename: recordPath,
	}

	if recordPath != "" {
		p.recorder = NewRecorder(stageCfg.ID, cfg.Display.Framerate)
		log.Printf("Recording enabled: %s", recordPath)
	}

	return p
}

// SetNext sets the scene to switch to once the level is complete.
func (p *Playing) SetNext(next func() scene.Scene) {
	p.next = next
}

// SetConfig implements scene.Tunable. A replay is played back under one
// tuning, so an active recording ends at the swap and keeps the frames
// recorded before it.
func (p *Playing) SetConfig(cfg *config.PhysicsConfig) {
	p.session.SetConfig(cfg)
	p.inputSystem = system.NewInputSystem(cfg)
	log.Printf("Physics config reloaded")

	if p.recorder != nil && p.recorder.IsRecording() {
		p.recorder.Stop()
		log.Printf("Recording stopped at frame %d: physics config changed", p.recorder.FrameCount())
	}
}

// Session returns the simulation behind the scene
func (p *Playing) Session() *Session {
	return p.session
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	// M: toggle sound
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if m, ok := p.sink.(muter); ok {
			log.Printf("Sound enabled: %v", m.Toggle())
		}
	}

	input := p.inputSystem.GetInput(p.camera.X, p.camera.Y)
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	report := p.session.Step(input, dt)
	report.Dispatch(p.sink)

	player := p.session.Player()
	p.fx.observe(report, player, p.session.Config().Combat.DeathDuration)
	if p.session.State() != state.StatePaused {
		p.fx.update(dt)
		cam := p.session.Config().Camera
		p.camera.Follow(player.X, player.Y, p.viewport(), cam.FollowLerp, cam.DeadzoneX)
	}
	if input.RestartPressed {
		p.camera.Snap(player.X, player.Y, p.viewport())
	}

	if p.session.State() == state.StateLevelComplete && input.JumpPressed && p.next != nil {
		return p.next(), nil
	}
	return nil, nil // nil = stay on this scene
}

func (p *Playing) viewport() Viewport {
	stage := p.session.Stage()
	return Viewport{
		ScreenW: float64(p.screenW),
		ScreenH: float64(p.screenH),
		WorldW:  stage.PixelWidth(),
		WorldH:  stage.PixelHeight(),
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawTiles(screen)
	p.drawMarkers(screen)
	p.drawEnemies(screen)
	p.drawAnchors(screen)
	p.drawHook(screen)
	p.drawPlayer(screen)
	p.drawUI(screen)

	switch p.session.State() {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateLevelComplete:
		p.drawOverlay(screen, color.RGBA{0, 40, 20, 180}, p.completeText())
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image) {
	stage := p.session.Stage()
	ts := stage.TileSize
	startX := int(p.camera.X) / ts
	startY := int(p.camera.Y) / ts
	endX := (int(p.camera.X)+p.screenW)/ts + 1
	endY := (int(p.camera.Y)+p.screenH)/ts + 1

	for ty := max(startY, 0); ty <= endY && ty < stage.Height; ty++ {
		for tx := max(startX, 0); tx <= endX && tx < stage.Width; tx++ {
			tile := stage.GetTile(tx, ty)
			var c color.Color
			h := float32(ts)
			yOff := float32(0)
			switch tile.Type {
			case entity.TileGround:
				c = colorGround
			case entity.TileDirt:
				c = colorDirt
			case entity.TileStone:
				c = colorStone
			case entity.TilePlatform:
				c, h = colorPlatform, 4
			case entity.TileSpike:
				c, h, yOff = colorSpike, float32(ts)/2, float32(ts)/2
			default:
				continue
			}

			x, y := p.camera.ScreenPos(float64(tx*ts), float64(ty*ts))
			vector.FillRect(screen, float32(x), float32(y)+yOff, float32(ts), h, c, false)
		}
	}
}

func (p *Playing) drawMarkers(screen *ebiten.Image) {
	stage := p.session.Stage()
	for i, m := range stage.Checkpoints {
		x, y := p.camera.ScreenPos(m.X, m.Y)
		c := colorAnchor
		if p.session.Taken(system.TriggerCheckpoint, i) {
			c = colorCheckpoint
		}
		vector.FillRect(screen, float32(x)-1, float32(y)-8, 2, 16, c, false)
		vector.FillRect(screen, float32(x)+1, float32(y)-8, 6, 4, c, false)
	}
	for i, m := range stage.Raindrops {
		if p.session.Taken(system.TriggerRaindrop, i) {
			continue
		}
		x, y := p.camera.ScreenPos(m.X, m.Y)
		vector.DrawFilledCircle(screen, float32(x), float32(y), 3, colorDrop, true)
	}
	for i, m := range stage.Secrets {
		if p.session.Taken(system.TriggerSecret, i) {
			continue
		}
		x, y := p.camera.ScreenPos(m.X, m.Y)
		vector.DrawFilledCircle(screen, float32(x), float32(y), 4, colorSecret, true)
	}
	if f := stage.Finish; f != nil {
		x, y := p.camera.ScreenPos(f.X, f.Y)
		vector.FillRect(screen, float32(x)-1, float32(y)-24, 2, 32, colorFinish, false)
		vector.FillRect(screen, float32(x)+1, float32(y)-24, 10, 6, colorCheckpoint, false)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image) {
	stage := p.session.Stage()
	for i, e := range stage.Enemies {
		if p.session.Taken(system.TriggerEnemy, i) {
			continue
		}
		x, y, w, h := e.Box(stage.TileSize)
		sx, sy := p.camera.ScreenPos(x, y)
		c := colorSlime
		if e.Kind == entity.EnemyBug {
			c = colorBug
		}
		vector.FillRect(screen, float32(sx), float32(sy), float32(w), float32(h), c, false)
	}
}

func (p *Playing) drawAnchors(screen *ebiten.Image) {
	for _, a := range p.session.Stage().Anchors {
		x, y := p.camera.ScreenPos(a.X, a.Y)
		r, c := float32(4), colorAnchor
		if a.Highlighted {
			r, c = 4*p.fx.anchorScale, colorAnchorLit
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), r, c, true)
	}
}

func (p *Playing) drawHook(screen *ebiten.Image) {
	player := p.session.Player()
	px, py := p.camera.ScreenPos(player.X, player.Y)

	if player.HookState == entity.HookReady && !player.IsDead {
		ax := px + player.AimX*24
		ay := py + player.AimY*24
		vector.StrokeLine(screen, float32(px), float32(py), float32(ax), float32(ay), 1, colorAim, false)
	}

	anchor, ok := entity.LookupAnchor(p.session.Stage().Anchors, player.HookAnchor)
	if !ok {
		return
	}
	ax, ay := p.camera.ScreenPos(anchor.X, anchor.Y)
	if player.HookState == entity.HookFiring {
		t := float64(p.fx.hookProgress)
		ax = px + (ax-px)*t
		ay = py + (ay-py)*t
		vector.DrawFilledCircle(screen, float32(ax), float32(ay), 2, colorRope, false)
	}
	vector.StrokeLine(screen, float32(px), float32(py), float32(ax), float32(ay), 1, colorRope, false)
}

func (p *Playing) drawPlayer(screen *ebiten.Image) {
	player := p.session.Player()
	x, y, w, h := player.Hitbox.GetWorldRect(player.X, player.Y)
	sx, sy := p.camera.ScreenPos(x, y)
	sy += float64(p.fx.deathOffset)

	c := color.Color(colorPlayer)
	anim := entity.DeriveAnimation(player)
	if anim == entity.AnimHurt && int(player.HurtTimer/100)%2 == 0 {
		c = colorHurt
	}
	if player.IsDead {
		c = color.RGBA{colorPlayer.R, colorPlayer.G, colorPlayer.B, 120}
	}
	vector.FillRect(screen, float32(sx), float32(sy), float32(w), float32(h), c, false)

	// Facing marker
	eyeX := sx + w - 4
	if !player.FacingRight {
		eyeX = sx + 2
	}
	vector.FillRect(screen, float32(eyeX), float32(sy)+3, 2, 2, colorBG, false)

	if ebiten.IsKeyPressed(ebiten.KeyTab) {
		ebitenutil.DebugPrintAt(screen, anim.String(), int(sx)-4, int(sy)-14)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	prog := p.session.Progress()
	player := p.session.Player()

	hud := fmt.Sprintf("%s  %s / %s\nDrops %d/%d  Secrets %d/%d  Deaths %d",
		p.session.Stage().Name, formatTime(prog.Elapsed), formatTime(prog.ParTime),
		prog.Drops, prog.TotalDrops, prog.Secrets, prog.TotalSecrets, prog.Deaths)
	if prog.Combo > 1 {
		hud += fmt.Sprintf("\nCombo x%d", prog.Combo)
	}
	ebitenutil.DebugPrint(screen, hud)

	if ebiten.IsKeyPressed(ebiten.KeyTab) {
		debug := fmt.Sprintf("pos %.1f,%.1f vel %.0f,%.0f\nhook %s rope %.1f ang %.2f w %.3f\nground %v coyote %.0f buffer %.0f",
			player.X, player.Y, player.VX, player.VY,
			player.HookState, player.RopeLength, player.SwingAngle, player.SwingAngularVelocity,
			player.OnGround, player.CoyoteTimer, player.JumpBufferTimer)
		ebitenutil.DebugPrintAt(screen, debug, 4, p.screenH-48)
	}
}

func (p *Playing) completeText() string {
	prog := p.session.Progress()
	text := fmt.Sprintf("LEVEL COMPLETE\n\nTime %s (par %s)\nDrops %d/%d\nSecrets %d/%d\nBest combo %d",
		formatTime(prog.Elapsed), formatTime(prog.ParTime),
		prog.Drops, prog.TotalDrops, prog.Secrets, prog.TotalSecrets, prog.BestCombo)
	if prog.UnderPar() {
		text += "\nUnder par!"
	}
	if p.next != nil {
		text += "\n\nJump to continue"
	}
	return text + "\nR to retry"
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.Color, text string) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), c, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-40)
}

func formatTime(sec float64) string {
	whole := int(math.Max(sec, 0))
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	player := p.session.Player()
	p.camera.Snap(player.X, player.Y, p.viewport())
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}
