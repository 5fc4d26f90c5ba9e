// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audbridge/internal/dsp"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved frames; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// Window for cubic interpolation:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2.
	// Edges are padded by repeating the nearest real frame.
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Position between frames[1] and frames[2], in source frames.
	pos float64

	srcBuf []float32
	bufPos int
	bufLen int
	eof    bool

	// One-pole low-pass for anti-aliasing when downsampling
	useFilter     bool
	filterAlpha   float32
	filterState   []float32
	filterStarted bool
}

func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, src.SampleRate(), dstRate)
	}

	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, 1024*channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextSource copies the next source frame into dst. ok is false at the end
// of the source.
func (r *Resampler) nextSource(dst []float32) (bool, error) {
	ch := r.channels

	for r.bufPos >= r.bufLen {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadFrames(r.srcBuf)
		r.bufPos, r.bufLen = 0, n

		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.srcBuf[r.bufPos*ch:(r.bufPos+1)*ch])
	r.bufPos++

	if r.useFilter {
		// start from the first sample to avoid a warm-up transient
		if !r.filterStarted {
			copy(r.filterState, dst)
			r.filterStarted = true
		}

		for c := range ch {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.nextSource(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}

	return nil
}

// fill loads slot i from the source, padding with slot i-1 at the end.
func (r *Resampler) fill(i int) error {
	ok := false
	if r.hasFrame[i-1] {
		var err error
		if ok, err = r.nextSource(r.frames[i]); err != nil {
			return err
		}
	}

	r.hasFrame[i] = ok
	if !ok {
		copy(r.frames[i], r.frames[i-1])
	}

	return nil
}

// shift slides the window one source frame forward.
func (r *Resampler) shift() error {
	f := r.frames
	r.frames = [4][]float32{f[1], f[2], f[3], f[0]}
	r.hasFrame = [4]bool{r.hasFrame[1], r.hasFrame[2], r.hasFrame[3], false}

	return r.fill(3)
}

// ReadFrames produces frames at the target rate.
// len(dst) must be a multiple of r.channels.
func (r *Resampler) ReadFrames(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	want := len(dst) / r.channels

	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				return written, err
			}
		}

		// past the last real frame, unless it lands exactly on it
		if !r.hasFrame[2] && !(r.hasFrame[1] && r.pos == 0) {
			return written, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			out[c] = dsp.CubicInterpolate(r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written, nil
}
