// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"fmt"
	"sync/atomic"
)

// Buffer is a fixed-capacity circular buffer of interleaved frames with
// exactly one producer and one consumer.
//
// Positions are kept masked to [0, capacity). One slot is always left empty
// so that a full buffer (capacity-1 frames) can be told apart from an empty
// one. readPos is stored only by the consumer and writePos only by the
// producer; Reset is the single exception and must only run while the
// consumer is known to be idle.
type Buffer struct {
	capacity    uint32
	mask        uint32
	maxChannels int
	channels    int

	readPos  atomic.Uint32
	writePos atomic.Uint32

	storage []float32
}

// New allocates a Buffer holding capacityFrames frames of up to maxChannels
// samples each. capacityFrames must be a power of two greater than one.
func New(capacityFrames, maxChannels int) (*Buffer, error) {
	if capacityFrames < 2 || capacityFrames&(capacityFrames-1) != 0 || capacityFrames > 1<<30 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacityFrames)
	}

	if maxChannels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrChannels, maxChannels)
	}

	return &Buffer{
		capacity:    uint32(capacityFrames),
		mask:        uint32(capacityFrames - 1),
		maxChannels: maxChannels,
		channels:    maxChannels,
		storage:     make([]float32, capacityFrames*maxChannels),
	}, nil
}

// Capacity is the number of frame slots, one of which is never filled.
func (b *Buffer) Capacity() int { return int(b.capacity) }

// MaxChannels is the widest frame the storage can hold.
func (b *Buffer) MaxChannels() int { return b.maxChannels }

// Channels is the frame width set by the last Reset.
func (b *Buffer) Channels() int { return b.channels }

// Reset empties the buffer and sets the frame width. Both positions go back
// to zero. The caller guarantees that neither side is touching the buffer.
func (b *Buffer) Reset(channels int) error {
	if channels < 1 || channels > b.maxChannels {
		return fmt.Errorf("%w: %d (max %d)", ErrChannels, channels, b.maxChannels)
	}

	b.channels = channels
	b.readPos.Store(0)
	b.writePos.Store(0)

	return nil
}

// Available returns the number of frames ready for the consumer.
func (b *Buffer) Available() int {
	w := b.writePos.Load()
	r := b.readPos.Load()

	return int((w - r) & b.mask)
}

// Free returns the number of frames the producer may write right now.
// readPos is loaded once; a concurrent read can only make the real value
// larger.
func (b *Buffer) Free() int {
	r := b.readPos.Load()
	w := b.writePos.Load()

	return int((r - w - 1) & b.mask)
}

// Write copies up to frames interleaved frames from src into the buffer and
// returns how many were stored. Frames that do not fit are dropped; the
// buffer never overwrites unread data. Producer side only.
func (b *Buffer) Write(src []float32, frames int) int {
	ch := b.channels
	if frames > len(src)/ch {
		frames = len(src) / ch
	}

	free := b.Free()
	if frames > free {
		frames = free
	}

	w := b.writePos.Load()
	for f := range frames {
		at := int(w&b.mask) * ch
		copy(b.storage[at:at+ch], src[f*ch:f*ch+ch])
		w = (w + 1) & b.mask
		b.writePos.Store(w)
	}

	return max(frames, 0)
}

// Front returns the oldest unread frame, or nil when the buffer is empty.
// The slice aliases internal storage and is valid until Advance. Consumer
// side only.
func (b *Buffer) Front() []float32 {
	r := b.readPos.Load()
	if r == b.writePos.Load() {
		return nil
	}

	at := int(r) * b.channels

	return b.storage[at : at+b.channels]
}

// Advance releases the frame returned by Front. It is a no-op on an empty
// buffer. Consumer side only.
func (b *Buffer) Advance() {
	r := b.readPos.Load()
	if r == b.writePos.Load() {
		return
	}

	b.readPos.Store((r + 1) & b.mask)
}

// Read copies the oldest frame into dst and advances. It reports false when
// nothing is buffered.
func (b *Buffer) Read(dst []float32) bool {
	frame := b.Front()
	if frame == nil {
		return false
	}

	copy(dst, frame)
	b.Advance()

	return true
}
