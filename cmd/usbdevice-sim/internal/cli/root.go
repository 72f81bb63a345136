// Package cli implements the usbdevice-sim command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ardnew/usbcore/pkg/prof"
	"github.com/ardnew/usbcore/usblog"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	cpuProfile string
)

// Execute runs the usbdevice-sim root command.
func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "usbdevice-sim",
		Short:         "Simulate a USB peripheral's control transfer state machine",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyLogging(); err != nil {
				return err
			}
			if cpuProfile != "" {
				if err := prof.StartCPU(cpuProfile); err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			prof.StopCPU()
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a usbdevice-sim config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "text or json")
	root.PersistentFlags().StringVar(&cpuProfile, "cpu-profile", "", "write a CPU profile to this path (requires building with -tags profile)")

	root.AddCommand(runCmd())
	root.AddCommand(traceCmd())
	return root
}

func applyLogging() error {
	switch logLevel {
	case "debug":
		usblog.SetLevel(slog.LevelDebug)
	case "info":
		usblog.SetLevel(slog.LevelInfo)
	case "warn":
		usblog.SetLevel(slog.LevelWarn)
	case "error":
		usblog.SetLevel(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", logLevel)
	}
	switch logFormat {
	case "json":
		usblog.SetFormat(usblog.FormatJSON)
	default:
		usblog.SetFormat(usblog.FormatText)
	}
	return nil
}
