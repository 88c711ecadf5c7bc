package simulation

import (
	"fmt"
	"math/rand"

	"solar-system-sim/internal/common"

	"gonum.org/v1/gonum/spatial/r3"
)

// StarField is a fixed set of points scattered in a cube around the origin.
type StarField struct {
	Stars  []r3.Vec
	Bounds common.Bounds
}

// NewStarField scatters count stars uniformly in a cube of side extent
// centred at the origin. The stars never move afterwards.
func NewStarField(rng *rand.Rand, count int, extent float64) (*StarField, error) {
	if count < 0 {
		return nil, fmt.Errorf("star count must be non-negative, got %d", count)
	}
	if extent < 0 {
		return nil, fmt.Errorf("star field extent must be non-negative, got %.3f", extent)
	}
	bounds := common.CubeBounds(extent)
	stars := make([]r3.Vec, 0, count)
	for i := 0; i < count; i++ {
		pos, err := common.NewRandomVector(rng, bounds)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random position for star %d: %w", i, err)
		}
		stars = append(stars, pos)
	}
	return &StarField{Stars: stars, Bounds: bounds}, nil
}
