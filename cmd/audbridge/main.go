// SPDX-License-Identifier: EPL-2.0

// Command audbridge streams audio files through the real-time bridge and
// inspects or converts them.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := SetupRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
