package sea

import (
	"fmt"
	"os"
	"sort"

	"seacull/internal/mathutil"

	"gopkg.in/yaml.v3"
)

// SceneLayouts is the root of scenes.yaml
type SceneLayouts struct {
	Scenes map[string]SceneLayout `yaml:"scenes"`
}

// SceneLayout describes what a scene contains once it has finished loading
type SceneLayout struct {
	Name string `yaml:"-"`
	// ReadyAfterTicks models the host populating the scene some frames after
	// the scene-loaded notification fires
	ReadyAfterTicks int        `yaml:"ready_after_ticks"`
	Observer        bool       `yaml:"observer"`
	ObserverSpawn   [2]float64 `yaml:"observer_spawn"`
	Sea             *SeaLayout `yaml:"sea,omitempty"`
}

// SeaLayout is a rectangular grid of tiles under the tile container
type SeaLayout struct {
	Rows   int        `yaml:"rows"`
	Cols   int        `yaml:"cols"`
	Origin [2]float64 `yaml:"origin"`
	// Disabled lists [row, col] cells that start inactive
	Disabled [][2]int `yaml:"disabled,omitempty"`
}

// LoadLayouts reads scene layouts from a YAML file
func LoadLayouts(filename string) (map[string]*SceneLayout, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene layouts file: %w", err)
	}
	return ParseLayouts(data)
}

// ParseLayouts decodes scene layouts from YAML bytes
func ParseLayouts(data []byte) (map[string]*SceneLayout, error) {
	var layouts SceneLayouts
	if err := yaml.Unmarshal(data, &layouts); err != nil {
		return nil, fmt.Errorf("failed to parse scene layouts: %w", err)
	}

	out := make(map[string]*SceneLayout, len(layouts.Scenes))
	for name, layout := range layouts.Scenes {
		if layout.Sea != nil && (layout.Sea.Rows < 0 || layout.Sea.Cols < 0) {
			return nil, fmt.Errorf("scene %s: negative sea dimensions", name)
		}
		if layout.ReadyAfterTicks < 0 {
			return nil, fmt.Errorf("scene %s: ready_after_ticks must be >= 0", name)
		}
		// Make a copy to avoid pointer issues
		layoutCopy := layout
		layoutCopy.Name = name
		out[name] = &layoutCopy
	}
	return out, nil
}

// SortedSceneNames returns layout names in a stable order
func SortedSceneNames(layouts map[string]*SceneLayout) []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *SeaLayout) isDisabled(row, col int) bool {
	for _, cell := range s.Disabled {
		if cell[0] == row && cell[1] == col {
			return true
		}
	}
	return false
}

// anchor returns the top-left corner of the cell at row, col
func (s *SeaLayout) anchor(row, col int, tileSize float64) mathutil.Vec2 {
	return mathutil.Vec2{
		X: s.Origin[0] + float64(col)*tileSize,
		Y: s.Origin[1] + float64(row)*tileSize,
	}
}
