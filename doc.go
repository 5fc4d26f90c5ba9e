// SPDX-License-Identifier: EPL-2.0

// Package audbridge plays a discoverable network audio stream on a
// fixed-period audio device, and publishes audio files as such streams.
//
// The pieces live in subpackages:
//
//   - bridge: the real-time bridge. It discovers a stream by name and
//     rate, buffers it in a lock-free ring and renders it block by block.
//   - transport/loopback: an in-process stream network with outlets,
//     inlets and a resolver catalog.
//   - sender: streams a decoded file onto the network in real time.
//   - device: block format, a simulated clock, WAV capture and an oto
//     speaker output.
//   - audio and formats: decoding (WAV, AIFF, MP3, Ogg Vorbis),
//     resampling and downmixing.
//   - config: YAML configuration for all of the above.
//
// This package ties them together. Session runs a sender, a bridge and an
// output device under one context:
//
//	cfg, _ := config.Load("audbridge.yaml")
//	open := func() (audio.Source, error) { return formats.Open("song.wav") }
//	sess, err := audbridge.NewSession(cfg, open, logger)
//	if err != nil {
//	    return err
//	}
//	return sess.Run(ctx)
//
// Convert and Probe are file utilities built on the same pipeline:
//
//	src, _ := formats.Open("song.mp3")
//	defer src.Close()
//	out, _ := os.Create("song.wav")
//	frames, err := audbridge.Convert(src, out, audbridge.ConvertOptions{SampleRate: 44100})
package audbridge
