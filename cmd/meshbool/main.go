// Command meshbool is the CLI front end for the corefinement and
// classification core (spec.md §6 "CLI (outside the core)"):
// subcommands boolean and defects, each taking --in/--out plus
// algorithm flags, exit code zero on success and non-zero on any
// reported failure.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	workers  int
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "meshbool",
		Short: "exact-arithmetic Boolean operations on triangle soups",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file of algorithm flags")
	root.PersistentFlags().IntVar(&workers, "workers", 0, "worker pool size (0: GOMAXPROCS)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newBooleanCmd())
	root.AddCommand(newDefectsCmd())
	return root
}

// resolveConfig merges --config's file under the explicit flags, since
// an explicit flag on the command line should win over a config file
// (SPEC_FULL.md §2).
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(cfgPath, defaultConfig())
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// newLogger builds the zerolog logger cmd/meshbool wires as the
// pipeline's boolean.ProgressSink (SPEC_FULL.md §2 "Logging"),
// console-formatted to stderr so stdout stays free for any piped
// output a future subcommand might emit.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().Timestamp().Logger()
}
