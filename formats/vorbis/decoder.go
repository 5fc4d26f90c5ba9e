// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audbridge/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	channels int
	done     bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// ReadFrames decodes straight into dst; oggvorbis already produces
// interleaved float32.
func (s *source) ReadFrames(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if s.done {
		return 0, io.EOF
	}

	// Read counts samples, not frames
	n, err := s.dec.Read(dst)
	frames := n / s.channels

	switch {
	case errors.Is(err, io.EOF):
		s.done = true
		return frames, io.EOF
	case err != nil:
		return frames, fmt.Errorf("%w", err)
	}

	return frames, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if dec.Channels() < 1 {
		return nil, fmt.Errorf("vorbis: %d channels", dec.Channels())
	}

	return &source{
		dec:      dec,
		channels: dec.Channels(),
	}, nil
}
