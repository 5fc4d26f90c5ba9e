// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"path/filepath"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/internal/audiotest"
)

// Example_resampler demonstrates how to use the Resampler to change sample rates.
func Example_resampler() {
	// 1 second of a 440Hz tone at 44.1kHz
	source := audiotest.NewSineSource(44100, 1, 44100, 440.0)

	resampler, err := audio.NewResampler(source, 16000)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Output sample rate: %d Hz\n", resampler.SampleRate())
	fmt.Printf("Channels: %d\n", resampler.Channels())

	out, err := audio.ReadAll(resampler, 4096)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Total frames read: %d\n", len(out))
	// Output:
	// Output sample rate: 16000 Hz
	// Channels: 1
	// Total frames read: 16000
}

// Example_monoMixer demonstrates converting stereo to mono.
func Example_monoMixer() {
	source := audiotest.NewSineSource(16000, 2, 16000, 440.0)
	mono := audio.NewMonoMixer(source)

	fmt.Printf("Input channels: %d\n", source.Channels())
	fmt.Printf("Output channels: %d\n", mono.Channels())

	buf := make([]float32, 100)
	n, _ := mono.ReadFrames(buf)

	fmt.Printf("Read %d mono frames\n", n)
	// Output:
	// Input channels: 2
	// Output channels: 1
	// Read 100 mono frames
}

// ExampleConform prepares a wide, off-rate file for an 8-channel 44.1kHz
// stream.
func ExampleConform() {
	source := audiotest.NewSilentSource(48000, 10, 4800)

	src, err := audio.Conform(source, 44100, 8)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d Hz, %d ch\n", src.SampleRate(), src.Channels())
	// Output:
	// 44100 Hz, 1 ch
}

// ExampleRegistry shows decoder lookup by file extension.
func ExampleRegistry() {
	registry := audio.NewRegistry()
	registry.Register("wav", nil)
	registry.Register(".MP3", nil)

	_, ok := registry.Get(filepath.Ext("song.mp3"))
	fmt.Println(ok, registry.Extensions())
	// Output:
	// true [mp3 wav]
}
