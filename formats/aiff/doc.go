// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
//
//	f, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 256*src.Channels())
//	n, err := src.ReadFrames(buf)
//
// 8, 16, 24 and 32-bit PCM with any channel count and sample rate are
// supported. Samples come out as float32 in [-1.0, 1.0).
package aiff
