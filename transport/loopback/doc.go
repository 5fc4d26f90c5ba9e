// SPDX-License-Identifier: EPL-2.0

// Package loopback is an in-process stream.Transport. Outlets advertise
// streams on a Network, and every inlet opened for an outlet receives its
// own copy of the pushed frames.
//
// It follows the recovery-off behavior of a streaming-layer outlet: once an
// outlet closes, its inlets drain what they still hold and then report
// stream.ErrStreamLost. Each inlet queue is bounded; when a reader falls
// behind the oldest frames are dropped.
package loopback
