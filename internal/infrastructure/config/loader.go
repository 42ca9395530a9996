package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

const (
	physicsFile = "physics.json"
	levelsFile  = "levels.yaml"
	stagesDir   = "stages"
)

// DefaultTileSize is used when neither the catalog nor the level sets one.
const DefaultTileSize = 16

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
	Levels  *LevelCatalog
}

// Loader loads game configuration using the fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadPhysics loads physics.json
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, physicsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", physicsFile, err)
	}

	var cfg PhysicsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", physicsFile, err)
	}

	return &cfg, nil
}

// LoadLevels loads the level catalog from levels.yaml
func (l *Loader) LoadLevels() (*LevelCatalog, error) {
	data, err := fs.ReadFile(l.fsys, levelsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", levelsFile, err)
	}

	var catalog LevelCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", levelsFile, err)
	}
	if len(catalog.Levels) == 0 {
		return nil, fmt.Errorf("failed to parse %s: no levels defined", levelsFile)
	}
	if catalog.TileSize == 0 {
		catalog.TileSize = DefaultTileSize
	}

	for i := range catalog.Levels {
		lvl := &catalog.Levels[i]
		if lvl.ID == "" {
			return nil, fmt.Errorf("failed to parse %s: level %d has no id", levelsFile, i)
		}
		if lvl.TileSize == 0 {
			lvl.TileSize = catalog.TileSize
		}
	}

	return &catalog, nil
}

// LoadStage returns the level with the given id. Levels backed by a TMX
// source are imported and their map filled in.
func (l *Loader) LoadStage(catalog *LevelCatalog, id string) (*StageConfig, error) {
	found, ok := catalog.Find(id)
	if !ok {
		return nil, fmt.Errorf("failed to find stage %s", id)
	}

	stage := *found
	if stage.Source == "" {
		return &stage, nil
	}

	imported, err := l.LoadTMX(path.Join(stagesDir, stage.Source))
	if err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", id, err)
	}
	stage.Map = imported.Map
	stage.TileSize = imported.TileSize

	return &stage, nil
}

// LoadAll loads all base configurations (physics, levels)
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	levels, err := l.LoadLevels()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
		Levels:  levels,
	}, nil
}
