// slipsort splits a multi-page payroll PDF into per-employee files by
// reading each page, matching it against a roster of names, and
// routing the page to an identity-keyed output directory.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/payrollkit/slipsort/internal/common"
)

var rootFlags struct {
	configPath string
	verbose    bool
}

var cfg *common.Config

var rootCmd = &cobra.Command{
	Use:           "slipsort",
	Short:         "Split batch payroll PDFs into per-employee documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = common.LoadConfig()
		if rootFlags.configPath != "" {
			var err error
			if cfg, err = common.LoadConfigFile(cfg, rootFlags.configPath); err != nil {
				return err
			}
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level := slog.LevelInfo
		if rootFlags.verbose {
			level = slog.LevelDebug
		}
		var handler slog.Handler
		if cfg.LogJSON {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		} else {
			handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		}
		slog.SetDefault(slog.New(handler))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to YAML config file (overrides environment)")
	pf.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(processCmd, rosterCmd, mergeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
