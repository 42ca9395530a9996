package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/raincoat/internal/application/game"
	"github.com/younwookim/raincoat/internal/application/scene"
	"github.com/younwookim/raincoat/internal/application/scene/playing"
	"github.com/younwookim/raincoat/internal/application/system"
	"github.com/younwookim/raincoat/internal/infrastructure/audio"
	"github.com/younwookim/raincoat/internal/infrastructure/config"
)

func main() {
	// Parse command line flags
	levelFlag := flag.String("level", "", "Level id to start on (default: the first level)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Run a recording headless and print the outcome")
	configsFlag := flag.String("configs", "", "Read configs from this directory instead of the built-in set")
	watchFlag := flag.Bool("watch", false, "Reload physics.json on change (requires -configs)")
	muteFlag := flag.Bool("mute", false, "Start with sound off")
	flag.Parse()

	loader, err := newLoader(*configsFlag)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		data, stageCfg, err := loadReplay(loader, cfg.Levels, *replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		fmt.Print(runReplay(cfg.Physics, stageCfg, *data))
		return
	}

	levelID := *levelFlag
	if levelID == "" {
		levelID = cfg.Levels.Levels[0].ID
	}

	synth := audio.NewSynth()
	if *muteFlag {
		synth.Toggle()
	}
	// The game is playable without sound.
	if err := synth.Initialize(); err != nil {
		log.Printf("Audio disabled: %v", err)
	}
	defer synth.Close()

	levels := &levelChain{loader: loader, catalog: cfg.Levels, physics: cfg.Physics, sink: synth}
	first, err := levels.load(levelID, *recordFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	display := cfg.Physics.Display
	g := game.New(first, display.ScreenWidth, display.ScreenHeight)
	g.SetDT(1.0 / float64(display.Framerate))

	if *watchFlag {
		if *configsFlag == "" {
			log.Fatalf("-watch needs -configs to point at a directory on disk")
		}
		watcher, err := config.NewWatcher(loader)
		if err != nil {
			log.Fatalf("Failed to watch configs: %v", err)
		}
		defer func() { _ = watcher.Close() }()
		g.WatchConfig(watcher.Updates)
		log.Printf("Watching %s for physics changes", loader.BasePath())
		if *recordFlag != "" {
			log.Printf("Recording ends at the first physics reload")
		}
	}

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Raincoat")
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// newLoader reads from dir when set and from the embedded configs otherwise.
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// levelChain builds level scenes in catalog order.
type levelChain struct {
	loader  *config.Loader
	catalog *config.LevelCatalog
	physics *config.PhysicsConfig
	sink    system.CueSink
}

// load builds the scene for id and links it to the level after it. Only
// the first level is recorded.
func (c *levelChain) load(id, recordPath string) (*playing.Playing, error) {
	stageCfg, err := c.loader.LoadStage(c.catalog, id)
	if err != nil {
		return nil, err
	}

	p := playing.New(c.physics, stageCfg, c.sink, recordPath)
	if next := c.catalog.Index(id) + 1; next < len(c.catalog.Levels) {
		nextID := c.catalog.Levels[next].ID
		p.SetNext(func() scene.Scene {
			s, err := c.load(nextID, "")
			if err != nil {
				log.Printf("Failed to load level %s: %v", nextID, err)
				return nil
			}
			return s
		})
	}
	return p, nil
}
