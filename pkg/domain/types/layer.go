package types

import "fmt"

// Layer is the fixed architectural classification of a business domain
type Layer string

const (
	LayerStrategic Layer = "strategic"
	LayerCore      Layer = "core"
	LayerSupport   Layer = "support"
)

// AllLayers returns the layers in presentation order
func AllLayers() []Layer {
	return []Layer{
		LayerStrategic,
		LayerCore,
		LayerSupport,
	}
}

// IsValid checks if the layer is valid
func (l Layer) IsValid() bool {
	switch l {
	case LayerStrategic, LayerCore, LayerSupport:
		return true
	default:
		return false
	}
}

// Rank returns the presentation position of the layer. Unknown layers sort last.
func (l Layer) Rank() int {
	switch l {
	case LayerStrategic:
		return 0
	case LayerCore:
		return 1
	case LayerSupport:
		return 2
	default:
		return 3
	}
}

// Title returns the display name of the layer
func (l Layer) Title() string {
	switch l {
	case LayerStrategic:
		return "Strategic"
	case LayerCore:
		return "Core"
	case LayerSupport:
		return "Support"
	default:
		return string(l)
	}
}

// String returns the string representation of the layer
func (l Layer) String() string {
	return string(l)
}

// ParseLayer parses a string into a Layer
func ParseLayer(s string) (Layer, error) {
	l := Layer(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid layer: %s", s)
	}
	return l, nil
}
