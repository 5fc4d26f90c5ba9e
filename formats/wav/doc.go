// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files on top of
// github.com/go-audio/wav.
//
// # Decoding
//
//	f, _ := os.Open("audio.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	buf := make([]float32, 256*src.Channels())
//	n, err := src.ReadFrames(buf)
//
// 8, 16, 24 and 32-bit linear PCM are accepted, with any channel count and
// sample rate. 8-bit data is unsigned in WAV and is re-centered on zero.
// Samples come out as float32 in [-1.0, 1.0).
//
// # Writing
//
//	f, _ := os.Create("capture.wav")
//	w, err := wav.NewWriter(f, 44100, 2, 16)
//	err = w.WriteFrames(samples)
//	err = w.Close()
//
// The writer clamps samples to [-1, 1]. Close rewrites the RIFF sizes, so
// the destination must be seekable.
package wav
