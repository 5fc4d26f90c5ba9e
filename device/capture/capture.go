// SPDX-License-Identifier: EPL-2.0

// Package capture records rendered blocks to a WAV file, so a headless
// bridge can be listened to afterwards.
package capture

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audbridge/device"
	"github.com/ik5/audbridge/formats/wav"
)

// DefaultBitDepth is used when the configured depth is zero.
const DefaultBitDepth = 16

// ErrClosed is returned by WriteBlock after Close.
var ErrClosed = errors.New("recorder closed")

// Recorder is a device.Sink that appends every block to a WAV stream.
type Recorder struct {
	mu     sync.Mutex
	w      *wav.Writer
	file   *os.File
	format device.Format
	logger logrus.FieldLogger
	closed bool
}

var _ device.Sink = (*Recorder)(nil)

// New records to ws. The caller keeps ownership of ws.
func New(ws io.WriteSeeker, f device.Format, bitDepth int, logger logrus.FieldLogger) (*Recorder, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}

	w, err := wav.NewWriter(ws, int(math.Round(f.SampleRate)), f.OutChannels, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	return &Recorder{w: w, format: f, logger: logger}, nil
}

// Create records to a new file at path, which Close also closes.
func Create(path string, f device.Format, bitDepth int, logger logrus.FieldLogger) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	r, err := New(file, f, bitDepth, logger)
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, err
	}

	r.file = file
	logger.WithField("path", path).Info("Recording output")

	return r, nil
}

func (r *Recorder) WriteBlock(b *device.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	return r.w.WriteFrames(b.Samples())
}

// Frames is the number of frames recorded so far.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.w.Frames()
}

// Close finalizes the WAV header. Safe to call more than once.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	err := r.w.Close()
	if r.file != nil {
		err = errors.Join(err, r.file.Close())
	}

	r.logger.WithFields(logrus.Fields{
		"frames":  r.w.Frames(),
		"seconds": float64(r.w.Frames()) / r.format.SampleRate,
	}).Info("Recording finished")

	return err
}
