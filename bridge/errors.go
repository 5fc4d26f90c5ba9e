// SPDX-License-Identifier: EPL-2.0

package bridge

import "errors"

var (
	// ErrInvalidConfig wraps every Config validation failure.
	ErrInvalidConfig = errors.New("invalid bridge config")

	// ErrChannelCount is returned when a stream is wider than MaxChannels
	// or has no channels.
	ErrChannelCount = errors.New("invalid channel count")

	// ErrRenderBusy is returned when a render block did not finish within
	// the quiesce timeout, so the ring could not be reset safely.
	ErrRenderBusy = errors.New("render block still in flight")

	// ErrRunning is returned by Run on a bridge that is already running.
	ErrRunning = errors.New("bridge already running")
)

// Fault classifies the recoverable problems the deferred tasks handle.
type Fault int

const (
	// FaultDiscoveryEmpty: the catalog was empty.
	FaultDiscoveryEmpty Fault = iota
	// FaultRateMismatch: a named stream had an incompatible rate.
	FaultRateMismatch
	// FaultChannelCount: a named stream had too many or no channels.
	FaultChannelCount
	// FaultConnect: opening or validating an inlet failed.
	FaultConnect
	// FaultStreamLost: the transport reported the source gone.
	FaultStreamLost
	// FaultTransfer: any other transport error while filling.
	FaultTransfer

	faultCount
)

func (f Fault) String() string {
	switch f {
	case FaultDiscoveryEmpty:
		return "discovery_empty"
	case FaultRateMismatch:
		return "rate_mismatch"
	case FaultChannelCount:
		return "channel_count"
	case FaultConnect:
		return "connect"
	case FaultStreamLost:
		return "stream_lost"
	case FaultTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}
