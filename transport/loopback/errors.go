// SPDX-License-Identifier: EPL-2.0

package loopback

import "errors"

var (
	// ErrInvalidDescriptor is returned when advertising a stream without a
	// name, channels or a positive rate.
	ErrInvalidDescriptor = errors.New("invalid stream descriptor")

	// ErrPartialFrame is returned when a push is not a whole number of frames.
	ErrPartialFrame = errors.New("sample count is not a multiple of the channel count")

	// ErrOutletClosed is returned by Push after Close.
	ErrOutletClosed = errors.New("outlet closed")
)
