// SPDX-License-Identifier: EPL-2.0

// Package sender streams a decoded audio file to a loopback outlet in real
// time, the way a file player publishes onto a streaming network.
//
// The file is conformed to the target rate and channel limit, advertised
// as a stream, then pushed in fixed chunks paced by the wall clock: at any
// moment the number of frames sent is rate*elapsed, rounded down to whole
// chunks. With Loop set the file restarts at its end; otherwise the outlet
// closes, which consumers observe as stream loss.
package sender
