// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// files of any channel count and sample rate:
//
//	f, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 256*src.Channels())
//	n, err := src.ReadFrames(buf)
package vorbis
