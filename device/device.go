// SPDX-License-Identifier: EPL-2.0

package device

import "fmt"

// Context is what the hardware hands the render callback for one block.
type Context interface {
	// Frames is the fixed number of frames in the block.
	Frames() int
	// SampleRate is the fixed hardware rate in Hz.
	SampleRate() float64
	// OutChannels is the number of hardware output channels.
	OutChannels() int
	// Write stores one sample for one output channel at one frame offset.
	Write(frame, channel int, v float32)
}

// Renderer is invoked once per block and must return before the block
// deadline. It must not block.
type Renderer interface {
	Render(ctx Context)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx Context)

func (f RendererFunc) Render(ctx Context) { f(ctx) }

// Sink receives every rendered block, after the renderer returns.
type Sink interface {
	WriteBlock(b *Block) error
}

// Format describes the fixed hardware configuration.
type Format struct {
	SampleRate  float64 `yaml:"sample_rate"`
	Frames      int     `yaml:"block_frames"`
	OutChannels int     `yaml:"out_channels"`
}

// Validate reports an unusable format.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidFormat, f.SampleRate)
	}

	if f.Frames < 1 {
		return fmt.Errorf("%w: block frames %d", ErrInvalidFormat, f.Frames)
	}

	if f.OutChannels < 1 {
		return fmt.Errorf("%w: output channels %d", ErrInvalidFormat, f.OutChannels)
	}

	return nil
}

// Block is an interleaved output buffer for one render tick. It implements
// Context.
type Block struct {
	format  Format
	samples []float32
}

// NewBlock allocates a silent block for f.
func NewBlock(f Format) *Block {
	return &Block{
		format:  f,
		samples: make([]float32, f.Frames*f.OutChannels),
	}
}

func (b *Block) Frames() int         { return b.format.Frames }
func (b *Block) SampleRate() float64 { return b.format.SampleRate }
func (b *Block) OutChannels() int    { return b.format.OutChannels }
func (b *Block) Format() Format      { return b.format }

func (b *Block) Write(frame, channel int, v float32) {
	b.samples[frame*b.format.OutChannels+channel] = v
}

// At returns the sample written at frame and channel.
func (b *Block) At(frame, channel int) float32 {
	return b.samples[frame*b.format.OutChannels+channel]
}

// Samples exposes the interleaved block contents.
func (b *Block) Samples() []float32 { return b.samples }

// Clear zeroes the block.
func (b *Block) Clear() {
	clear(b.samples)
}
