// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoded-audio primitives the sender streams
// from.
//
//   - Source: a pull-based reader of interleaved float32 frames
//   - Resampler: sample rate conversion with cubic interpolation
//   - MonoMixer: averages all channels into one
//   - Conform: builds the pipeline that makes a file fit a stream
//   - Registry: decoders keyed by file extension
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadFrames(dst []float32) (int, error)
//	    Close() error
//	}
//
// ReadFrames always works in whole frames: len(dst) is a multiple of
// Channels and the return value counts frames, not samples. Decoders and
// processors all implement Source, so they chain:
//
//	src, _ := formats.Open("song.mp3")
//	src, _ = audio.Conform(src, 44100, 8)
//	buf := make([]float32, 256*src.Channels())
//	n, err := src.ReadFrames(buf)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], 0.0 being silence.
//
// # Error Handling
//
// A read may return frames together with io.EOF. Any other error is a
// decoding or I/O problem:
//
//	for {
//	    n, err := source.ReadFrames(buf)
//	    process(buf[:n*source.Channels()])
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
