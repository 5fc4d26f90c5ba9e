// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the go-audio integer decoders (WAV, AIFF) to
// audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/internal/dsp"
)

// Reader is the part of a go-audio decoder the source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM to float frames.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	unsigned8  bool
	intBuf     *goaudio.IntBuffer
	done       bool
}

var _ audio.Source = (*Source)(nil)

// NewSource wraps dec. unsigned8 marks 8-bit data stored as unsigned
// (offset by 128), as WAV does.
func NewSource(dec Reader, format *goaudio.Format, bitDepth int, unsigned8 bool) *Source {
	return &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		unsigned8:  unsigned8 && bitDepth == 8,
		intBuf: &goaudio.IntBuffer{
			Format:         format,
			SourceBitDepth: bitDepth,
		},
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadFrames(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if s.done {
		return 0, io.EOF
	}

	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)

	// a trailing partial frame is dropped
	frames := n / s.channels
	for i := range frames * s.channels {
		v := s.intBuf.Data[i]
		if s.unsigned8 {
			v -= 128
		}
		dst[i] = dsp.IntToFloat(v, s.bitDepth)
	}

	switch {
	case err != nil && !errors.Is(err, io.EOF):
		return frames, fmt.Errorf("%w", err)
	case n == 0 || err != nil:
		s.done = true
		return frames, io.EOF
	}

	return frames, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek. go-audio decoders need to seek.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return bytes.NewReader(data), nil
}
