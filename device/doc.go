// SPDX-License-Identifier: EPL-2.0

// Package device models the audio hardware the bridge renders into.
//
// The hardware supplies a fixed block size, sample rate and output channel
// count, and calls a Renderer once per block. A Renderer writes one sample
// per output channel per frame through Context.Write.
//
// Clock is a software stand-in for the hardware period. It is used by the
// CLI when no sound card is wanted and by tests through Step:
//
//	clk, _ := device.NewClock(device.Format{SampleRate: 48000, Frames: 256, OutChannels: 2}, br, nil, log)
//	_ = clk.Step(10) // ten blocks, no waiting
//
// Subpackages plug real outputs in: otoout plays through the system sound
// device, capture records rendered blocks to a WAV file.
package device
