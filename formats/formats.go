// SPDX-License-Identifier: EPL-2.0

// Package formats wires the bundled decoders into an audio.Registry and
// opens files by extension.
package formats

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/formats/aiff"
	"github.com/ik5/audbridge/formats/mp3"
	"github.com/ik5/audbridge/formats/vorbis"
	"github.com/ik5/audbridge/formats/wav"
)

// Registry returns a registry with every bundled decoder.
func Registry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})

	return r
}

// Open decodes path with the default registry.
func Open(path string) (audio.Source, error) {
	return OpenWith(Registry(), path)
}

// OpenWith decodes path with the decoder registered for its extension.
// Closing the returned source closes the file.
func OpenWith(reg *audio.Registry, path string) (audio.Source, error) {
	ext := filepath.Ext(path)

	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", audio.ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return &fileSource{Source: src, f: f}, nil
}

type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}

	return err
}
