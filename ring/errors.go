// SPDX-License-Identifier: EPL-2.0

package ring

import "errors"

var (
	// ErrCapacity is returned when the frame capacity is not a power of two.
	ErrCapacity = errors.New("ring capacity must be a power of two greater than one")

	// ErrChannels is returned for a frame width the storage cannot hold.
	ErrChannels = errors.New("invalid ring channel count")
)
