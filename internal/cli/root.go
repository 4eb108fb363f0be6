// Package cli implements parkctl, the command-line front end for the park.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"themepark/internal/config"
)

// options carries the configuration shared by every subcommand.
type options struct {
	cfg    *config.Config
	envErr error
	output string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// FromEnv only returns a nil config for unparseable values; validation
	// failures are rechecked after flags are applied.
	cfg, envErr := config.FromEnv()
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	} else {
		envErr = nil
	}
	opts := &options{cfg: cfg, envErr: envErr, output: "text"}

	rootCmd := &cobra.Command{
		Use:   "parkctl",
		Short: "Run and inspect theme-park rides",
		Long: `parkctl manages theme-park rides: their waiting queues, ride history,
operators and CSV history files.

Configuration is read from THEMEPARK_* environment variables and may be
overridden with flags.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.envErr != nil {
				return opts.envErr
			}
			return opts.cfg.Validate()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", opts.output, "Output format: text, json")
	rootCmd.PersistentFlags().StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error (env: THEMEPARK_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&cfg.History.Dir, "history-dir", cfg.History.Dir, "Directory for CSV exports and imports (env: THEMEPARK_EXPORT_DIR)")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newDemoCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))

	return rootCmd
}

func (o *options) out(w io.Writer) *Output {
	return NewOutput(o.output, w)
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
