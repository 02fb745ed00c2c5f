package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nguyentantai21042004/rerun/internal/config"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath  string
	recursive   bool
	immediate   bool
	stopOnError bool
	rateLimit   float64
	notices     bool
	poll        time.Duration
	pty         bool
	logLevel    string
}

// newRootCommand builds the CLI. The resolved configuration is handed to
// runFn, which lets tests inspect it without watching anything.
func newRootCommand(runFn func(ctx context.Context, cfg *config.Config) error) *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "rerun [flags] <path> <command> [args...]",
		Short: "Run a command whenever a path changes",
		Long: `Run a command whenever a path changes

Flags must come before <path>; everything after <path> is passed to the
command untouched. With --config, path and command may come from the file.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, &f, args)
			if err != nil {
				return err
			}
			return runFn(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	flags.BoolVarP(&f.recursive, "recursive", "r", false, "watch subdirectories")
	flags.BoolVarP(&f.immediate, "immediate", "i", false, "run the command once before the first change")
	flags.BoolVarP(&f.stopOnError, "stop-on-error", "s", false, "exit 1 when the command cannot be run")
	flags.Float64VarP(&f.rateLimit, "rate-limit", "l", 0, "debounce window in seconds")
	flags.BoolVar(&f.notices, "notices", false, "report NoticeWrite/NoticeRemove before the debounced change")
	flags.DurationVar(&f.poll, "poll", 0, "poll for changes at this interval instead of using OS notifications")
	flags.BoolVar(&f.pty, "pty", false, "run the command attached to a pseudo-terminal")
	flags.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (default info)")

	return cmd
}

// buildConfig layers flags and positional arguments over the optional config
// file and validates the result.
func buildConfig(cmd *cobra.Command, f *rootFlags, args []string) (*config.Config, error) {
	cfg := &config.Config{}
	if f.configPath != "" {
		fromFile, err := config.Read(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}

	if len(args) > 0 {
		cfg.Path = args[0]
	}
	if len(args) > 1 {
		cfg.Command = append([]string(nil), args[1:]...)
	}

	flags := cmd.Flags()
	if flags.Changed("recursive") {
		cfg.Recursive = f.recursive
	}
	if flags.Changed("immediate") {
		cfg.Immediate = f.immediate
	}
	if flags.Changed("stop-on-error") {
		cfg.StopOnError = f.stopOnError
	}
	if flags.Changed("rate-limit") {
		rateLimit, err := secondsToDuration(f.rateLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit: %w", err)
		}
		cfg.RateLimit = rateLimit
	}
	if flags.Changed("notices") {
		cfg.Notices = f.notices
	}
	if flags.Changed("poll") {
		cfg.Poll = f.poll
	}
	if flags.Changed("pty") {
		cfg.Exec.PTY = f.pty
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// maxSeconds is the largest whole-second count a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

func secondsToDuration(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%v is not a finite number of seconds", seconds)
	}
	if math.Abs(seconds) > maxSeconds {
		return 0, fmt.Errorf("%v seconds is out of range (max %.0f)", seconds, maxSeconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
