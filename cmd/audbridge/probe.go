// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audbridge"
	"github.com/ik5/audbridge/formats"
	"github.com/ik5/audbridge/stream"
)

// ProbeCmd reports format and bridge compatibility for each file.
func ProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>...",
		Short: "Check audio files against the bridge settings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}

			sel := stream.Selector{
				Name:      cfg.Bridge.StreamName,
				LocalRate: cfg.Device.SampleRate,
				Tolerance: cfg.Bridge.Tolerance,
			}

			out := cmd.OutOrStdout()

			var errs []error
			for _, path := range args {
				r, err := probeFile(path, sel)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", path, err)
					errs = append(errs, err)
					continue
				}

				verdict := "ok"
				if r.Rejection != nil {
					verdict = r.Rejection.Error()
				}

				fmt.Fprintf(out, "%s: %d Hz, %d ch, %d frames (%v), peak %.3f: %s\n",
					path, r.SampleRate, r.Channels, r.Frames, r.Duration, r.Peak, verdict)
			}

			return errors.Join(errs...)
		},
	}
}

func probeFile(path string, sel stream.Selector) (audbridge.Report, error) {
	src, err := formats.Open(path)
	if err != nil {
		return audbridge.Report{}, err
	}
	defer src.Close()

	return audbridge.Probe(src, sel)
}
