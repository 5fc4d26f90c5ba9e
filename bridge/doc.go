// SPDX-License-Identifier: EPL-2.0

// Package bridge implements the real-time audio bridge: it binds to a
// discoverable network stream and feeds a fixed-period render callback
// that must never block.
//
// # Execution contexts
//
// Two contexts share a Bridge:
//
//   - the real-time context calls Render once per hardware block. Render
//     reads the activation flag and the ring buffer, writes one sample per
//     output channel per frame and posts fire-and-forget requests for the
//     deferred tasks. It never blocks, allocates or logs.
//   - the deferred context runs Discover (catalog refresh, selection,
//     connect) and Fill (inlet to ring transfer). Run serves both on their
//     own goroutines; requests that arrive while one is pending coalesce.
//
// They communicate only through the ring buffer and the activation flag.
// The ring's read position belongs to Render, its write position to Fill.
//
// # Lifecycle
//
//	Disconnected -> Connecting -> Active -> Lost|Error -> Disconnected
//
// A connection is attempted only while disconnected, for the first
// catalog entry whose name matches and whose nominal rate is within
// Tolerance of the hardware rate. Streams wider than MaxChannels are
// skipped. On connect the ring is reset and then the stream is activated;
// before the reset the bridge waits for any render block still in flight.
//
// # Stream loss
//
// When the transport reports loss, or any other pull error occurs, the
// bridge deactivates at once and closes the inlet. Frames still buffered
// are not played: the render loop outputs silence from the next frame on,
// and the next connection starts from an empty ring.
//
// # Scheduling
//
// Discovery is requested DiscoveryPerSecond times per second of audio
// (derived from block size and rate), the first time on the first block.
// While active, a fill is requested every FillEveryBlocks blocks.
//
// Usage:
//
//	br, err := bridge.New(bridge.DefaultConfig(), format, transport, logger)
//	if err != nil {
//	    return err
//	}
//	go br.Run(ctx)
//	// from the audio callback:
//	br.Render(block)
package bridge
