package layout

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Spacing is the layout spacing configuration. Field names mirror the
// option keys of the TOML override format.
type Spacing struct {
	SubgraphHeaderHeight     float64 `toml:"SUBGRAPH_HEADER_HEIGHT"`
	SubgraphPadding          float64 `toml:"SUBGRAPH_PADDING"`
	SubgraphContentTopMargin float64 `toml:"SUBGRAPH_CONTENT_TOP_MARGIN"`

	NodeSeparationHorizontal float64 `toml:"NODE_SEPARATION_HORIZONTAL"`
	NodeSeparationVertical   float64 `toml:"NODE_SEPARATION_VERTICAL"`

	ContainerSeparationHorizontal float64 `toml:"CONTAINER_SEPARATION_HORIZONTAL"`
	ContainerSeparationVertical   float64 `toml:"CONTAINER_SEPARATION_VERTICAL"`

	NestedSubgraphSeparationHorizontal float64 `toml:"NESTED_SUBGRAPH_SEPARATION_HORIZONTAL"`
	NestedSubgraphSeparationVertical   float64 `toml:"NESTED_SUBGRAPH_SEPARATION_VERTICAL"`

	MetaGraphMargin     float64 `toml:"META_GRAPH_MARGIN"`
	NestedContentMargin float64 `toml:"NESTED_CONTENT_MARGIN"`

	MixedContentVerticalSpacing   float64 `toml:"MIXED_CONTENT_VERTICAL_SPACING"`
	MixedContentHorizontalSpacing float64 `toml:"MIXED_CONTENT_HORIZONTAL_SPACING"`
}

// DefaultSpacing returns the documented default spacing. The values are
// tuned for readable output at 1:1 zoom with the default node sizing.
func DefaultSpacing() Spacing {
	return Spacing{
		SubgraphHeaderHeight:     30,
		SubgraphPadding:          20,
		SubgraphContentTopMargin: 10,

		NodeSeparationHorizontal: 50,
		NodeSeparationVertical:   60,

		ContainerSeparationHorizontal: 80,
		ContainerSeparationVertical:   80,

		NestedSubgraphSeparationHorizontal: 40,
		NestedSubgraphSeparationVertical:   40,

		MetaGraphMargin:     40,
		NestedContentMargin: 20,

		MixedContentVerticalSpacing:   40,
		MixedContentHorizontalSpacing: 40,
	}
}

// Minimum final dimensions of any subgraph container.
const (
	MinSubgraphWidth  = 300.0
	MinSubgraphHeight = 200.0
)

// LoadSpacing reads a TOML override file on top of the defaults. Only keys
// present in the file are overridden; unknown keys are ignored.
func LoadSpacing(path string) (Spacing, error) {
	s := DefaultSpacing()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read spacing config: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse spacing config %s: %w", path, err)
	}
	return s, nil
}
