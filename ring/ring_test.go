// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
)

func TestNew_Capacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{"zero", 0, true},
		{"one", 1, true},
		{"two", 2, false},
		{"not power of two", 1000, true},
		{"default", 8192, false},
		{"negative", -8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.capacity, 2)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%d) error = %v, wantErr %v", tt.capacity, err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrCapacity) {
				t.Errorf("New(%d) error = %v, want ErrCapacity", tt.capacity, err)
			}
		})
	}
}

func TestReset_Channels(t *testing.T) {
	t.Parallel()

	buf, err := New(16, 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := buf.Reset(0); !errors.Is(err, ErrChannels) {
		t.Errorf("Reset(0) error = %v, want ErrChannels", err)
	}

	if err := buf.Reset(9); !errors.Is(err, ErrChannels) {
		t.Errorf("Reset(9) error = %v, want ErrChannels", err)
	}

	if err := buf.Reset(3); err != nil {
		t.Fatalf("Reset(3) error = %v", err)
	}

	if buf.Channels() != 3 {
		t.Errorf("Channels() = %d, want 3", buf.Channels())
	}
}

func TestEmptyBuffer(t *testing.T) {
	t.Parallel()

	buf, _ := New(8, 2)
	_ = buf.Reset(2)

	if got := buf.Available(); got != 0 {
		t.Errorf("Available() = %d, want 0", got)
	}

	if got := buf.Free(); got != 7 {
		t.Errorf("Free() = %d, want 7", got)
	}

	if buf.Front() != nil {
		t.Error("Front() on empty buffer should be nil")
	}

	// Advance on empty must not move readPos past writePos.
	buf.Advance()
	if got := buf.Available(); got != 0 {
		t.Errorf("Available() after Advance on empty = %d, want 0", got)
	}
}

func TestWriteRead_Order(t *testing.T) {
	t.Parallel()

	buf, _ := New(8, 4)
	_ = buf.Reset(2)

	src := []float32{1, -1, 2, -2, 3, -3}
	if n := buf.Write(src, 3); n != 3 {
		t.Fatalf("Write() = %d, want 3", n)
	}

	dst := make([]float32, 2)
	for i := 1; i <= 3; i++ {
		if !buf.Read(dst) {
			t.Fatalf("Read() #%d reported empty", i)
		}

		if dst[0] != float32(i) || dst[1] != float32(-i) {
			t.Errorf("frame %d = %v, want [%d %d]", i, dst, i, -i)
		}
	}

	if buf.Read(dst) {
		t.Error("Read() after draining should report false")
	}
}

func TestWrite_Saturates(t *testing.T) {
	t.Parallel()

	buf, _ := New(8, 1)
	_ = buf.Reset(1)

	src := make([]float32, 20)
	for i := range src {
		src[i] = float32(i + 1)
	}

	if n := buf.Write(src, 20); n != 7 {
		t.Fatalf("Write() into empty buffer = %d, want 7 (capacity-1)", n)
	}

	if got := buf.Available(); got != 7 {
		t.Fatalf("Available() = %d, want 7", got)
	}

	// A full buffer rejects further frames.
	if n := buf.Write([]float32{99}, 1); n != 0 {
		t.Errorf("Write() into full buffer = %d, want 0", n)
	}

	// The stored frames are intact, no wrap-around overwrite.
	dst := make([]float32, 1)
	for i := 1; i <= 7; i++ {
		buf.Read(dst)
		if dst[0] != float32(i) {
			t.Errorf("frame %d = %v, want %d", i, dst[0], i)
		}
	}
}

func TestWrite_WrapsAround(t *testing.T) {
	t.Parallel()

	buf, _ := New(4, 1)
	_ = buf.Reset(1)

	dst := make([]float32, 1)
	next := float32(0)
	want := float32(0)

	for round := 0; round < 10; round++ {
		src := []float32{next, next + 1}
		if n := buf.Write(src, 2); n != 2 {
			t.Fatalf("round %d: Write() = %d, want 2", round, n)
		}
		next += 2

		for range 2 {
			if !buf.Read(dst) {
				t.Fatalf("round %d: Read() reported empty", round)
			}

			if dst[0] != want {
				t.Fatalf("round %d: got %v, want %v", round, dst[0], want)
			}
			want++
		}
	}
}

func TestWrite_ShortSource(t *testing.T) {
	t.Parallel()

	buf, _ := New(16, 2)
	_ = buf.Reset(2)

	// Three frames requested but only one and a half supplied.
	if n := buf.Write([]float32{1, 2, 3}, 3); n != 1 {
		t.Errorf("Write() = %d, want 1", n)
	}
}

func TestReset_Empties(t *testing.T) {
	t.Parallel()

	buf, _ := New(16, 8)
	_ = buf.Reset(2)
	buf.Write(make([]float32, 10), 5)

	if err := buf.Reset(4); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if buf.Available() != 0 {
		t.Errorf("Available() after Reset = %d, want 0", buf.Available())
	}

	if buf.readPos.Load() != 0 || buf.writePos.Load() != 0 {
		t.Errorf("positions after Reset = (%d, %d), want (0, 0)", buf.readPos.Load(), buf.writePos.Load())
	}
}

// Random interleavings of writes and reads must never report more than
// capacity-1 frames and must deliver frames in order.
func TestInvariant_RandomSequence(t *testing.T) {
	t.Parallel()

	const capacity = 64

	buf, _ := New(capacity, 2)
	_ = buf.Reset(2)

	rng := rand.New(rand.NewSource(42))
	src := make([]float32, 2*capacity*2)
	dst := make([]float32, 2)

	var written, read float32

	for step := 0; step < 10000; step++ {
		if rng.Intn(2) == 0 {
			frames := rng.Intn(2 * capacity)
			for f := range frames {
				src[2*f] = written + float32(f)
				src[2*f+1] = -(written + float32(f))
			}

			n := buf.Write(src, frames)
			written += float32(n)
		} else {
			for range rng.Intn(capacity) {
				if !buf.Read(dst) {
					break
				}

				if dst[0] != read || dst[1] != -read {
					t.Fatalf("step %d: frame = %v, want [%v %v]", step, dst, read, -read)
				}
				read++
			}
		}

		if avail := buf.Available(); avail > capacity-1 {
			t.Fatalf("step %d: Available() = %d exceeds capacity-1", step, avail)
		}

		if avail, free := buf.Available(), buf.Free(); avail+free != capacity-1 {
			t.Fatalf("step %d: available %d + free %d != %d", step, avail, free, capacity-1)
		}
	}
}

func TestConcurrent_ProducerConsumer(t *testing.T) {
	t.Parallel()

	const total = 50000

	buf, _ := New(128, 1)
	_ = buf.Reset(1)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		chunk := make([]float32, 16)
		next := 0
		for next < total {
			frames := min(len(chunk), total-next)
			for i := range frames {
				chunk[i] = float32(next + i)
			}
			next += buf.Write(chunk, frames)
		}
	}()

	dst := make([]float32, 1)
	for want := 0; want < total; {
		if !buf.Read(dst) {
			continue
		}

		if dst[0] != float32(want) {
			t.Fatalf("frame %d = %v", want, dst[0])
		}
		want++
	}

	wg.Wait()
}
