// SPDX-License-Identifier: EPL-2.0

package sender

import "errors"

var (
	// ErrInvalidConfig wraps every Config validation failure.
	ErrInvalidConfig = errors.New("invalid sender config")

	// ErrNotStarted is returned by Run before Start.
	ErrNotStarted = errors.New("sender not started")

	// ErrSourceChanged is returned when a looped file reopens with another
	// rate or channel count.
	ErrSourceChanged = errors.New("source format changed on reopen")
)
