package config

// LevelCatalog is the root config for levels.yaml
type LevelCatalog struct {
	TileSize int           `yaml:"tileSize"`
	Levels   []StageConfig `yaml:"levels"`
}

// StageConfig describes one level as an ASCII map.
//
// Legend:
//
//	@ spawn        # ground     D dirt       S stone     P platform
//	^ spikes       H hook point C checkpoint F finish    r raindrop
//	* secret       1 2 enemies (ignored)     . empty
type StageConfig struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	ParTime  int      `yaml:"parTime"`
	Tips     []string `yaml:"tips"`
	TileSize int      `yaml:"tileSize,omitempty"`
	Map      string   `yaml:"map"`
	// Source is a TMX file under stages/; when set, Map is filled from it.
	Source string `yaml:"source,omitempty"`
}

// Find returns the level with the given id.
func (c *LevelCatalog) Find(id string) (*StageConfig, bool) {
	for i := range c.Levels {
		if c.Levels[i].ID == id {
			return &c.Levels[i], true
		}
	}
	return nil, false
}

// Index returns the position of id in the catalog or -1.
func (c *LevelCatalog) Index(id string) int {
	for i := range c.Levels {
		if c.Levels[i].ID == id {
			return i
		}
	}
	return -1
}
