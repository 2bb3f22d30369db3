// Package commands provides CLI command implementations for the srp6a tool.
//
//go:generate go tool mockgen -destination=mock_password.go -package=commands github.com/fzdarsky/srp6a/internal/cli/commands PasswordReader
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fzdarsky/srp6a/internal/cli/clicontext"
	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

var (
	errEmptyPassword    = protocol.NewInvalidRequestError("password must not be empty")
	errPasswordMismatch = protocol.NewInvalidRequestError("passwords do not match")
	errMissingUsername  = protocol.NewInvalidRequestError("--username is required")
)

// Streams holds the writers a command prints to. Results go to Out, logs
// and prompts go to Err.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// DefaultStreams returns the process stdout and stderr.
func DefaultStreams() Streams {
	return Streams{Out: os.Stdout, Err: os.Stderr}
}

// newFlagSet creates a flag set that reports errors instead of exiting.
func newFlagSet(name string, w io.Writer, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() {
		fmt.Fprint(w, usage)
		fmt.Fprintf(w, "\nFlags:\n")
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args and rejects positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return protocol.NewInvalidRequestError(err.Error())
	}

	if fs.NArg() > 0 {
		return protocol.NewInvalidRequestError(fmt.Sprintf("unexpected argument %q", fs.Arg(0)))
	}

	return nil
}

// loadConfig loads the configuration selected by the global --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(clicontext.ConfigPath())
	if err != nil {
		return nil, protocol.NewConfigurationError(err.Error())
	}
	return cfg, nil
}

// newLogger creates a logger from the configuration writing to w.
func newLogger(cfg *config.Config, w io.Writer) *logging.Logger {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelInfo
	}

	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		format = logging.FormatJSON
	}

	logger := logging.New(level, format)
	logger.SetOutput(w, w)
	return logger
}

// enrollmentGroup returns the group a verifier is created for. Unlike
// negotiation, an explicit request below the minimum is an error.
func enrollmentGroup(cfg *config.Config, id int) (*srp.Group, error) {
	if id == 0 {
		return cfg.DefaultGroup()
	}

	if id < cfg.SRP.MinGroup {
		return nil, protocol.NewConfigurationError(
			fmt.Sprintf("group %d is below the minimum group %d", id, cfg.SRP.MinGroup))
	}

	return cfg.Group(id)
}

// exitWithError prints err to w and exits. A help request exits with status 0.
func exitWithError(w io.Writer, err error) {
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}

	fmt.Fprintf(w, "Error: %s\n", protocol.FromError(err).Error())
	os.Exit(1)
}
