// SPDX-License-Identifier: EPL-2.0

package bridge

// cadence fires once every period ticks. It is owned by the render loop and
// needs no synchronisation.
type cadence struct {
	period    int
	remaining int
}

// newCadence returns a cadence with the given period (at least 1). When
// immediate is set the first tick fires.
func newCadence(period int, immediate bool) cadence {
	period = max(period, 1)

	c := cadence{period: period, remaining: period}
	if immediate {
		c.remaining = 1
	}

	return c
}

// tick advances the countdown and reports whether this tick fires.
func (c *cadence) tick() bool {
	c.remaining--
	if c.remaining > 0 {
		return false
	}

	c.remaining = c.period

	return true
}

// discoveryPeriod converts a per-second rate into render blocks.
func discoveryPeriod(sampleRate float64, blockFrames, perSecond int) int {
	if blockFrames < 1 || perSecond < 1 {
		return 1
	}

	return max(int(sampleRate/float64(blockFrames)/float64(perSecond)), 1)
}
