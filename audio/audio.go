// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadFrames fills dst with whole interleaved float32 frames in [-1,1]
	// and returns the number of frames written. len(dst) must be a multiple
	// of Channels. A read may return frames together with io.EOF; (0, io.EOF)
	// means the stream is finished.
	ReadFrames(dst []float32) (frames int, err error)

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by file extension (e.g., "wav", "mp3", "ogg").
// Keys are case-insensitive and may be given with or without the dot.
type Registry struct {
	codecs map[string]Decoder

	mtx sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
	}
}

func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeExt(ext)] = d
}

func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Extensions lists the registered keys, sorted.
func (r *Registry) Extensions() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	slices.Sort(exts)

	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
