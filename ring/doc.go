// SPDX-License-Identifier: EPL-2.0

// Package ring provides the lock-free transfer buffer between the stream
// filler and the real-time render loop.
//
// A Buffer is a single-producer, single-consumer FIFO of interleaved
// float32 frames. Its capacity is a power of two so positions wrap with a
// mask, and one slot is always kept empty:
//
//	available = (writePos - readPos) & mask   // consumer view
//	free      = (readPos - writePos - 1) & mask // producer view
//
// The producer only stores writePos and the consumer only stores readPos.
// Both are atomics, so each side sees the other's published frames without
// a lock. A full buffer truncates further writes instead of wrapping over
// unread frames.
//
// Typical use:
//
//	buf, _ := ring.New(8192, 8)
//	_ = buf.Reset(2)
//
//	// producer goroutine
//	n := buf.Write(chunk, frames)
//
//	// consumer (audio callback)
//	if frame := buf.Front(); frame != nil {
//	    out(frame)
//	    buf.Advance()
//	}
package ring
