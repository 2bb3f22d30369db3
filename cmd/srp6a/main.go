// Package main provides the srp6a CLI tool.
//
// The srp6a CLI lists SRP-6a groups, creates verifier records for
// enrollment, runs complete in-process client/server exchanges and checks
// the implementation against the RFC 5054 test vectors.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fzdarsky/srp6a/internal/cli/clicontext"
	"github.com/fzdarsky/srp6a/internal/cli/commands"
)

var (
	// version is set by build flags
	version = "dev"
	// commit is set by build flags
	commit = "none"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Parse global flags and extract command
	args, command, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(1)
	}

	// Handle special commands
	switch command {
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("srp6a version %s (%s)\n", version, commit)
		os.Exit(0)
	}

	// Route to command implementations
	switch command {
	case "groups":
		commands.NewGroupsCommand().Execute(args)
	case "verifier":
		commands.NewVerifierCommand().Execute(args)
	case "exchange":
		commands.NewExchangeCommand().Execute(args)
	case "vectors":
		commands.NewVectorsCommand().Execute(args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// parseGlobalFlags processes global flags and returns remaining args and the command.
// --config may appear anywhere in the argument list; --help and --version
// only count before the command, so that commands can print their own help.
// Examples:
//
//	srp6a --config groups.yaml groups     (before command)
//	srp6a groups --config=groups.yaml     (after command)
func parseGlobalFlags(args []string) ([]string, string, error) {
	remainingArgs := make([]string, 0, len(args))
	var command string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// Check for global flags
		if arg == "--config" || arg == "-config" {
			if i+1 >= len(args) {
				return nil, "", fmt.Errorf("flag needs an argument: %s", arg)
			}
			i++
			clicontext.SetConfigPath(args[i])
			continue
		}
		if value, ok := strings.CutPrefix(arg, "--config="); ok {
			clicontext.SetConfigPath(value)
			continue
		}

		if command == "" && isMetaFlag(arg) {
			command = arg
			continue
		}

		// First non-flag argument is the command
		if command == "" && !isFlag(arg) {
			command = arg
			continue
		}

		// All other arguments are passed to the command
		remainingArgs = append(remainingArgs, arg)
	}

	return remainingArgs, command, nil
}

// isFlag returns true if the argument looks like a flag (starts with -).
func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

func isMetaFlag(arg string) bool {
	switch arg {
	case "--help", "-h", "--version", "-v":
		return true
	}
	return false
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `srp6a - SRP-6a (RFC 5054) password authentication toolkit

Usage:
  srp6a <command> [flags]

Available Commands:
  groups     List the configured SRP groups
  verifier   Create a verifier record for a username and password
  exchange   Run a complete client/server handshake in process
  vectors    Check against the RFC 5054 test vectors

Global Flags:
  --config FILE     Group parameter and logging configuration (YAML)
  --help, -h        Show help information
  --version, -v     Show version information

Environment:
  SRP6A_LOG_LEVEL   Override logging.level (debug, info, warn, error)
  SRP6A_LOG_FORMAT  Override logging.format (json, human)

Examples:
  # List the built-in RFC 5054 groups
  srp6a groups

  # Enroll a user in the 3072-bit group
  srp6a verifier --username alice --group 4 > alice.yaml

  # Authenticate against the stored record
  srp6a exchange --verifier alice.yaml

  # Self-check
  srp6a vectors

For detailed help on a specific command, run:
  srp6a <command> --help

`)
}
