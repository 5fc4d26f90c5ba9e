// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the sample-level helpers shared by the decoders,
// the resampler and the WAV writer.
package dsp
