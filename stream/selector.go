// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"math"
)

// Selector decides which advertised stream is compatible with the local
// output clock.
type Selector struct {
	// Name must equal the descriptor name exactly.
	Name string
	// LocalRate is the hardware sample rate in Hz.
	LocalRate float64
	// Tolerance is the largest accepted fractional rate deviation,
	// exclusive. 0.001 means 0.1%.
	Tolerance float64
}

// Check reports why d is not acceptable, or nil when it is.
func (s Selector) Check(d Descriptor) error {
	if d.Name != s.Name {
		return ErrNameMismatch
	}

	if math.Abs(d.NominalRate-s.LocalRate) >= s.LocalRate*s.Tolerance {
		return fmt.Errorf("%w: %.1f Hz vs %.1f Hz", ErrRateMismatch, d.NominalRate, s.LocalRate)
	}

	return nil
}

// Select returns the first descriptor in catalog order that passes Check.
func (s Selector) Select(catalog []Descriptor) (Descriptor, bool) {
	for _, d := range catalog {
		if s.Check(d) == nil {
			return d, true
		}
	}

	return Descriptor{}, false
}
