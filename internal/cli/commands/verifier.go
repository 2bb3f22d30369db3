package commands

import (
	"fmt"
	"io"

	"github.com/fzdarsky/srp6a/internal/cli/output"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

const verifierUsage = `Usage: srp6a verifier --username USER [flags]

Create an SRP-6a verifier record (username, salt, v) for storage on a
server. The password is prompted for twice when --password is omitted.
A random salt the size of the group's digest is used unless --salt is given.

Examples:
  # Enroll alice in the default group
  srp6a verifier --username alice

  # Reproduce the RFC 5054 Appendix B verifier
  srp6a verifier --username alice --password password123 --group 1 \
    --salt BEB25379D1A8581EB5A727673A2441EE
`

// VerifierCommand implements the 'verifier' command.
type VerifierCommand struct {
	Streams
	Passwords PasswordReader
	Random    io.Reader // nil uses crypto/rand
}

// NewVerifierCommand creates a new verifier command instance.
func NewVerifierCommand() *VerifierCommand {
	streams := DefaultStreams()
	return &VerifierCommand{
		Streams:   streams,
		Passwords: NewTerminalPasswordReader(streams.Err),
	}
}

// Execute runs the verifier command and exits on error.
func (c *VerifierCommand) Execute(args []string) {
	if err := c.Run(args); err != nil {
		exitWithError(c.Err, err)
	}
}

// Run runs the verifier command with the provided arguments.
func (c *VerifierCommand) Run(args []string) error {
	fs := newFlagSet("verifier", c.Err, verifierUsage)
	username := fs.String("username", "", "Username to enroll")
	password := fs.String("password", "", "Password (prompts if not provided)")
	groupID := fs.Int("group", 0, "Group ID (defaults to the configured default group)")
	saltHex := fs.String("salt", "", "Salt in hex (random if not provided)")
	xDerivation := fs.String("x-derivation", "", "x derivation: rfc5054 or salt-password (defaults to configuration)")
	outputFormat := fs.String("output", "yaml", "Output format (yaml or json)")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *username == "" {
		return errMissingUsername
	}

	format, err := output.ParseFormat(*outputFormat)
	if err != nil {
		return protocol.NewInvalidRequestError(err.Error())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode := cfg.XMode()
	if *xDerivation != "" {
		if mode, err = srp.ParseXMode(*xDerivation); err != nil {
			return protocol.NewInvalidRequestError(err.Error())
		}
	}

	grp, err := enrollmentGroup(cfg, *groupID)
	if err != nil {
		return err
	}

	pass, err := promptPassword(c.Passwords, *password, true)
	if err != nil {
		return err
	}

	var v *srp.Verifier
	if *saltHex != "" {
		salt, err := srp.HexToBytes(*saltHex, 0)
		if err != nil {
			return fmt.Errorf("salt: %w", err)
		}
		v = srp.NewVerifierWithSalt(grp, *username, pass, salt, mode)
	} else {
		v, err = srp.NewVerifier(c.Random, grp, *username, pass, mode)
		if err != nil {
			return err
		}
	}

	newLogger(cfg, c.Err).Info("verifier created", map[string]any{
		"username": v.Username,
		"group":    grp.ID,
		"hash":     grp.Hash.String(),
		"salt":     srp.BytesToHex(v.Salt),
	})

	return output.Print(c.Out, protocol.NewVerifierRecord(grp, v, mode), format)
}
