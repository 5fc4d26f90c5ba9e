// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/audbridge"
	"github.com/ik5/audbridge/formats"
)

// ConvertCmd writes any supported file as PCM WAV.
func ConvertCmd() *cobra.Command {
	var opts audbridge.ConvertOptions

	cmd := &cobra.Command{
		Use:   "convert <input> <output.wav>",
		Short: "Resample and downmix an audio file to WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := loadConfig()
			if err != nil {
				return err
			}

			src, err := formats.Open(args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}

			frames, err := audbridge.Convert(src, out, opts)
			if err != nil {
				out.Close()
				os.Remove(args[1])
				return err
			}

			if err := out.Close(); err != nil {
				return errors.Join(err, os.Remove(args[1]))
			}

			logger.WithFields(logrus.Fields{
				"input":  args[0],
				"output": args[1],
				"frames": frames,
			}).Info("Converted")

			return nil
		},
	}

	cmd.Flags().IntVar(&opts.SampleRate, "rate", 0, "output sample rate (0 keeps the input rate)")
	cmd.Flags().IntVar(&opts.MaxChannels, "max-channels", 0, "mix inputs wider than this down to mono (0 keeps all)")
	cmd.Flags().IntVar(&opts.BitDepth, "bits", audbridge.DefaultConvertBitDepth, "output bit depth: 8, 16, 24 or 32")

	return cmd
}
