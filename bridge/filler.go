// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/audbridge/ring"
)

// filler moves frames from the inlet into the ring. It is the ring's only
// producer. Its scratch buffers are sized once so a steady-state fill does
// not allocate.
type filler struct {
	life           *lifecycle
	ring           *ring.Buffer
	pullLimit      int
	statusInterval int
	logger         logrus.FieldLogger
	stats          *counters

	scratch    []float32
	timestamps []float64
	reports    int
}

func newFiller(life *lifecycle, rb *ring.Buffer, pullLimit, statusInterval int, logger logrus.FieldLogger, stats *counters) *filler {
	return &filler{
		life:           life,
		ring:           rb,
		pullLimit:      pullLimit,
		statusInterval: statusInterval,
		logger:         logger,
		stats:          stats,
		scratch:        make([]float32, pullLimit*rb.MaxChannels()),
		timestamps:     make([]float64, pullLimit),
	}
}

// fill runs one bounded transfer. It returns the number of frames stored.
func (f *filler) fill() int {
	l := f.life

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.active.Load() || l.inlet == nil {
		return 0
	}

	ch := l.channels
	if ch < 1 || ch > f.ring.MaxChannels() {
		return 0
	}

	// one snapshot of readPos; the consumer can only free more meanwhile
	free := f.ring.Free()

	want := min(f.pullLimit, free)
	if want <= 0 {
		return 0
	}

	frames, err := l.inlet.Pull(f.scratch[:want*ch], f.timestamps[:want], want, 0)
	if err != nil {
		l.markLostLocked(err)
		return 0
	}

	if frames <= 0 {
		return 0
	}

	written := f.ring.Write(f.scratch[:frames*ch], frames)
	f.stats.framesIn.Add(uint64(written))

	f.reports++
	if f.reports%f.statusInterval == 0 {
		f.logger.WithFields(logrus.Fields{
			"buffered": f.ring.Available(),
			"capacity": f.ring.Capacity(),
			"underrun": f.stats.underrunFrames.Load(),
		}).Info("Audio buffer status")
	}

	return written
}
