// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/formats/wav"
)

func TestRegistry_Extensions(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if got := Registry().Extensions(); !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestOpen_Wav(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Tone.WAV")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	w, _ := wav.NewWriter(f, 8000, 1, 16)
	_ = w.WriteFrames([]float32{0.5, 0.25, 0})
	_ = w.Close()
	f.Close()

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := audio.ReadAll(src, 16)
	if err != nil || len(got) != 3 {
		t.Errorf("ReadAll() = %d frames, %v, want 3", len(got), err)
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// the file handle is gone
	if err := src.(*fileSource).f.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("file still open after Close: %v", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Open(filepath.Join(dir, "song.flac")); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Open(.flac) error = %v, want ErrUnknownFormat", err)
	}

	if _, err := Open(filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.wav")
	_ = os.WriteFile(bad, []byte("definitely not audio"), 0o600)

	if _, err := Open(bad); !errors.Is(err, wav.ErrNotWavFile) {
		t.Errorf("Open(bad) error = %v, want ErrNotWavFile", err)
	}
}
