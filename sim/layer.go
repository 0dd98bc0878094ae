package sim

import "fmt"

// Layer describes one stage of a feed-forward network.
// InputSize doubles as the processing time (in ticks) of each of the
// layer's VVPs; VVPCount is how many independent tasks the layer fans out to.
type Layer struct {
	InputSize int64 `yaml:"input_size" json:"input_size"`
	VVPCount  int   `yaml:"vvp_count" json:"vvp_count"`
}

func (l Layer) String() string {
	return fmt.Sprintf("(%d,%d)", l.InputSize, l.VVPCount)
}

// Validate reports whether the layer is well formed.
func (l Layer) Validate() error {
	if l.InputSize < 0 {
		return fmt.Errorf("input size %d is negative: %w", l.InputSize, ErrInvalidInput)
	}
	if l.VVPCount <= 0 {
		return fmt.Errorf("vvp count %d must be positive: %w", l.VVPCount, ErrInvalidInput)
	}
	return nil
}

// ValidateLayers checks a whole layer chain. An empty chain is invalid.
func ValidateLayers(layers []Layer) error {
	if len(layers) == 0 {
		return fmt.Errorf("layer list is empty: %w", ErrInvalidInput)
	}
	for i, l := range layers {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// cloneLayers returns an owned copy so that no two records share backing storage.
func cloneLayers(layers []Layer) []Layer {
	if len(layers) == 0 {
		return nil
	}
	out := make([]Layer, len(layers))
	copy(out, layers)
	return out
}

// MaxVVPCount returns the widest layer's fan-out.
func MaxVVPCount(layers []Layer) int {
	widest := 0
	for _, l := range layers {
		widest = max(widest, l.VVPCount)
	}
	return widest
}

// TotalInputSize returns the sum of input sizes, which is the completion time
// of the chain on an uncontended core pool.
func TotalInputSize(layers []Layer) int64 {
	var total int64
	for _, l := range layers {
		total += l.InputSize
	}
	return total
}
