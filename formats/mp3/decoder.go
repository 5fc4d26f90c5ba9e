// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/internal/dsp"
)

// go-mp3 always produces 16-bit little-endian stereo
const (
	channels      = 2
	bytesPerFrame = 4
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  mp3Reader
	buf  []byte
	done bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadFrames(dst []float32) (int, error) {
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if s.done {
		return 0, io.EOF
	}

	need := len(dst) / channels * bytesPerFrame
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)

	frames := n / bytesPerFrame
	for i := range frames * channels {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = dsp.IntToFloat(int(v), 16)
	}

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.done = true
		return frames, io.EOF
	case err != nil:
		return frames, fmt.Errorf("%w", err)
	}

	return frames, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
