// SPDX-License-Identifier: EPL-2.0

package otoout

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ik5/audbridge/device"
)

const bytesPerSample = 4

// Reader renders blocks on demand and serializes the first Channels outputs
// of each frame as little-endian float32. The player's pull is the clock.
type Reader struct {
	block    *device.Block
	renderer device.Renderer
	sink     device.Sink
	channels int

	out     []byte
	pending []byte
	blocks  atomic.Uint64
}

// NewReader prepares a reader that plays channels (1 or 2) of each block.
func NewReader(f device.Format, r device.Renderer, sink device.Sink, channels int) (*Reader, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if channels < 1 || channels > 2 || channels > f.OutChannels {
		return nil, fmt.Errorf("%w: %d playback channels for %d outputs",
			device.ErrInvalidFormat, channels, f.OutChannels)
	}

	return &Reader{
		block:    device.NewBlock(f),
		renderer: r,
		sink:     sink,
		channels: channels,
		out:      make([]byte, f.Frames*channels*bytesPerSample),
	}, nil
}

// Blocks is the number of blocks rendered so far.
func (rd *Reader) Blocks() uint64 { return rd.blocks.Load() }

// Read fills p completely, rendering as many blocks as it takes. Bytes of a
// block that do not fit are kept for the next call.
func (rd *Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(rd.pending) == 0 {
			if err := rd.render(); err != nil {
				return n, err
			}
		}

		c := copy(p[n:], rd.pending)
		rd.pending = rd.pending[c:]
		n += c
	}

	return n, nil
}

func (rd *Reader) render() error {
	rd.block.Clear()
	rd.renderer.Render(rd.block)
	rd.blocks.Add(1)

	if rd.sink != nil {
		if err := rd.sink.WriteBlock(rd.block); err != nil {
			return fmt.Errorf("sink: %w", err)
		}
	}

	i := 0
	for f := range rd.block.Frames() {
		for ch := range rd.channels {
			binary.LittleEndian.PutUint32(rd.out[i:], math.Float32bits(rd.block.At(f, ch)))
			i += bytesPerSample
		}
	}

	rd.pending = rd.out

	return nil
}
