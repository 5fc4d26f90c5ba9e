// SPDX-License-Identifier: EPL-2.0

package audbridge

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/formats/wav"
	"github.com/ik5/audbridge/internal/audiotest"
)

func tempFile(t testing.TB) *os.File {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })

	return f
}

func decodeBack(t *testing.T, f *os.File) audio.Source {
	t.Helper()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	return src
}

func TestConvert_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rate, ch   int
		frames     int
		opts       ConvertOptions
		wantRate   int
		wantCh     int
		wantFrames int
		tolerance  int
	}{
		{"passthrough", 8000, 2, 800, ConvertOptions{}, 8000, 2, 800, 0},
		{"downmix", 8000, 4, 800, ConvertOptions{MaxChannels: 2}, 8000, 1, 800, 0},
		{"upsample", 8000, 1, 800, ConvertOptions{SampleRate: 16000}, 16000, 1, 1600, 2},
		{"downsample", 48000, 2, 4800, ConvertOptions{SampleRate: 8000, BitDepth: 24}, 8000, 2, 800, 2},
		{"small buffer", 8000, 1, 333, ConvertOptions{BufferFrames: 7}, 8000, 1, 333, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := tempFile(t)
			src := audiotest.NewConstantSource(tt.rate, tt.ch, tt.frames, 0.25)

			n, err := Convert(src, out, tt.opts)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}

			if d := n - tt.wantFrames; d < -tt.tolerance || d > tt.tolerance {
				t.Fatalf("Convert() = %d frames, want %d (±%d)", n, tt.wantFrames, tt.tolerance)
			}

			if src.Closed() {
				t.Error("Convert closed its source")
			}

			back := decodeBack(t, out)
			if back.SampleRate() != tt.wantRate || back.Channels() != tt.wantCh {
				t.Fatalf("wrote %d Hz %d ch, want %d Hz %d ch",
					back.SampleRate(), back.Channels(), tt.wantRate, tt.wantCh)
			}

			samples, err := audio.ReadAll(back, 256)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if len(samples) != n*tt.wantCh {
				t.Fatalf("decoded %d samples, want %d", len(samples), n*tt.wantCh)
			}

			mid := samples[len(samples)/2]
			if math.Abs(float64(mid-0.25)) > 1e-3 {
				t.Errorf("middle sample = %v, want 0.25", mid)
			}
		})
	}
}

func TestConvert_EmptySource(t *testing.T) {
	t.Parallel()

	out := tempFile(t)
	n, err := Convert(audiotest.NewSilentSource(8000, 1, 0), out, ConvertOptions{})
	if err != nil || n != 0 {
		t.Fatalf("Convert() = %d, %v, want 0, nil", n, err)
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if _, err := Convert(src, tempFile(t), ConvertOptions{BitDepth: 12}); !errors.Is(err, wav.ErrUnsupportedEncoding) {
		t.Errorf("Convert(12 bits) error = %v", err)
	}

	if _, err := Convert(src, tempFile(t), ConvertOptions{SampleRate: -1}); err != nil {
		t.Errorf("Convert(negative rate) error = %v, want source rate kept", err)
	}
}

func BenchmarkConvert(b *testing.B) {
	out := tempFile(b)

	for b.Loop() {
		if _, err := out.Seek(0, io.SeekStart); err != nil {
			b.Fatal(err)
		}

		src := audiotest.NewSineSource(44100, 2, 44100, 440)
		if _, err := Convert(src, out, ConvertOptions{SampleRate: 8000, MaxChannels: 1}); err != nil {
			b.Fatal(err)
		}
	}
}
