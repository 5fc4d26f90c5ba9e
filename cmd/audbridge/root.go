// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/audbridge/config"
)

// Shared flags
var (
	cfgFile  string
	logLevel string
)

// SetupRootCmd builds the command tree.
func SetupRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "audbridge",
		Short: "Real-time network audio bridge",
		Long: `audbridge plays a named network audio stream on a fixed-period audio
device, switching to silence whenever the stream is missing or late.

Use 'audbridge play' to stream a file through the bridge, 'audbridge probe'
to check whether a file can stream as is, and 'audbridge convert' to
resample it to the device rate.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default: built-in settings)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the config file")

	rootCmd.AddCommand(PlayCmd())
	rootCmd.AddCommand(ProbeCmd())
	rootCmd.AddCommand(ConvertCmd())

	return rootCmd
}

// loadConfig reads --config, applies --log-level and configures logrus.
func loadConfig() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	logrus.SetLevel(level)

	return cfg, logrus.StandardLogger(), nil
}
