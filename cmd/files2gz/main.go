// Command files2gz watches a directory tree and mirrors newly created files
// into a target tree as gzip-compressed copies.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/raoulx24/files2gz/internal/config"
)

// Exit codes follow the daemon's historical container interface: sysexits
// EX_IOERR for path failures, the usage code for operator mistakes.
const (
	exitUsage = 2
	exitIO    = 74
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, config.ErrIO) {
			os.Exit(exitIO)
		}
		os.Exit(exitUsage)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "files2gz",
		Short:         "Monitor files in a directory and send them to another directory compressed",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "path to an optional YAML config file")
	flags.String("source", "", "path to the directory being monitored")
	flags.String("target", "", "path to the target directory for compressed files")
	flags.String("log-dir", "", "path to the directory, in which the logs will be stored")
	flags.String("log-level", "", "minimum log level for the events being logged")
	flags.String("watch-mode", "", "watch strategy: auto, fsnotify or poll")
	flags.Duration("poll-interval", 0, "scan interval when polling")
	flags.Int("workers", 0, "number of concurrent compression workers")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)

		if err := cfg.Validate(); err != nil {
			return err
		}
		return runDaemon(cfg)
	}

	return cmd
}

// applyFlags overrides config values with flags the operator actually set.
// Precedence is flags over environment over config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("source") {
		cfg.Source.Path, _ = flags.GetString("source")
	}
	if flags.Changed("target") {
		cfg.Target.Path, _ = flags.GetString("target")
	}
	if flags.Changed("log-dir") {
		cfg.Logging.Dir, _ = flags.GetString("log-dir")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("watch-mode") {
		cfg.Source.Watch.Mode, _ = flags.GetString("watch-mode")
	}
	if flags.Changed("poll-interval") {
		cfg.Source.Watch.PollInterval, _ = flags.GetDuration("poll-interval")
	}
	if flags.Changed("workers") {
		cfg.Workers.Count, _ = flags.GetInt("workers")
	}
}
