// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audbridge"
	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/formats"
)

// PlayCmd streams a file onto the loopback network and plays it through
// the bridge.
func PlayCmd() *cobra.Command {
	var (
		loop     bool
		keepRate bool
		stream   string
		output   string
		capture  string
		chunk    int
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Stream an audio file through the bridge",
		Long: `Decode an audio file (wav, aiff, mp3, ogg), publish it as a network
stream in real time and play it through the bridge.

The file is resampled to the device rate unless --keep-rate is given, in
which case the bridge only accepts it when the rates already match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("loop") {
				cfg.Sender.Loop = loop
			}
			if flags.Changed("stream") {
				cfg.Sender.Name = stream
				cfg.Bridge.StreamName = stream
			}
			if flags.Changed("output") {
				cfg.Device.Output = output
			}
			if flags.Changed("capture") {
				cfg.Device.CapturePath = capture
			}
			if flags.Changed("chunk") {
				cfg.Sender.ChunkFrames = chunk
			}
			if !keepRate && cfg.Sender.SampleRate == 0 {
				cfg.Sender.SampleRate = int(cfg.Device.SampleRate)
			}

			path := args[0]
			open := func() (audio.Source, error) { return formats.Open(path) }

			sess, err := audbridge.NewSession(cfg, open, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			logger.WithField("file", path).Info("Playing")

			return sess.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&loop, "loop", false, "restart the file when it ends")
	cmd.Flags().BoolVar(&keepRate, "keep-rate", false, "publish at the file's own sample rate")
	cmd.Flags().StringVar(&stream, "stream", "", "stream name for both sender and bridge")
	cmd.Flags().StringVar(&output, "output", "", "output driver: oto or clock")
	cmd.Flags().StringVar(&capture, "capture", "", "record the output to this WAV file")
	cmd.Flags().IntVar(&chunk, "chunk", 0, "frames per pushed chunk")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 plays until interrupted)")

	return cmd
}
