// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
//	f, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 256*src.Channels())
//	n, err := src.ReadFrames(buf)
//
// go-mp3 always decodes to stereo, so mono files come out with both
// channels equal. The sample rate is the file's own (typically 44.1kHz or
// 48kHz); use audio.Conform to fit it to a stream.
package mp3
