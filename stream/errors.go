// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	// ErrStreamLost signals that the remote source disappeared. It is kept
	// apart from other transport errors so callers can tell loss from faults.
	ErrStreamLost = errors.New("stream lost")

	// ErrTimeout is returned when a connection could not be opened in time.
	ErrTimeout = errors.New("stream open timed out")

	// ErrClosed is returned by an inlet used after Close.
	ErrClosed = errors.New("inlet closed")

	// ErrNameMismatch means a descriptor does not carry the wanted name.
	ErrNameMismatch = errors.New("stream name mismatch")

	// ErrRateMismatch means a descriptor's nominal rate is outside tolerance.
	ErrRateMismatch = errors.New("stream sample rate mismatch")
)
