package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fzdarsky/srp6a/internal/cli/output"
	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
	"gopkg.in/yaml.v3"
)

const exchangeUsage = `Usage: srp6a exchange [flags]

Run a complete SRP-6a handshake between an in-process client and server
and print the public transcript (salt, A, B, u, M1, M2).

Without --verifier the server enrolls the client's credentials first and
the group is negotiated: a requested group that is unknown or below the
configured minimum falls back to the minimum group. With --verifier the
server uses a stored record written by 'srp6a verifier', so a wrong
password fails with AUTHENTICATION_FAILED.

Examples:
  srp6a exchange --username alice --password password123 --group 5
  srp6a verifier --username alice > alice.yaml
  srp6a exchange --verifier alice.yaml
`

// ExchangeCommand implements the 'exchange' command.
type ExchangeCommand struct {
	Streams
	Passwords PasswordReader
	Random    io.Reader // nil uses crypto/rand
}

// NewExchangeCommand creates a new exchange command instance.
func NewExchangeCommand() *ExchangeCommand {
	streams := DefaultStreams()
	return &ExchangeCommand{
		Streams:   streams,
		Passwords: NewTerminalPasswordReader(streams.Err),
	}
}

// Execute runs the exchange command and exits on error.
func (c *ExchangeCommand) Execute(args []string) {
	if err := c.Run(args); err != nil {
		exitWithError(c.Err, err)
	}
}

// serverSide is what the server knows before the handshake.
type serverSide struct {
	group    *srp.Group
	mode     srp.XMode
	verifier *srp.Verifier
}

// Run runs the exchange command with the provided arguments.
func (c *ExchangeCommand) Run(args []string) error {
	fs := newFlagSet("exchange", c.Err, exchangeUsage)
	username := fs.String("username", "", "Client username (defaults to the verifier record's)")
	password := fs.String("password", "", "Client password (prompts if not provided)")
	groupID := fs.Int("group", 0, "Requested group ID (ignored with --verifier)")
	verifierFile := fs.String("verifier", "", "Stored verifier record (YAML or JSON)")
	showKey := fs.Bool("show-key", false, "Include the session key K in the output")
	outputFormat := fs.String("output", "yaml", "Output format (yaml or json)")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	format, err := output.ParseFormat(*outputFormat)
	if err != nil {
		return protocol.NewInvalidRequestError(err.Error())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, c.Err).WithFields(map[string]any{"command": "exchange"})

	var record *protocol.VerifierRecord
	if *verifierFile != "" {
		if record, err = readVerifierRecord(*verifierFile); err != nil {
			return err
		}
		if *username == "" {
			*username = record.Username
		}
	}

	if *username == "" {
		return errMissingUsername
	}

	pass, err := promptPassword(c.Passwords, *password, false)
	if err != nil {
		return err
	}

	var server *serverSide
	if record != nil {
		server, err = storedServerSide(cfg, record)
	} else {
		server, err = c.enrolledServerSide(cfg, logger, *groupID, *username, pass)
	}
	if err != nil {
		return err
	}

	transcript, err := c.handshake(server, *username, pass, *showKey)
	if err != nil {
		logger.Warn("exchange failed", map[string]any{
			"username": *username,
			"group":    server.group.ID,
			"error":    err.Error(),
		})
		return err
	}

	logger.Info("exchange complete", map[string]any{
		"username": transcript.Username,
		"group":    transcript.GroupID,
		"hash":     transcript.Hash,
	})

	return output.Print(c.Out, transcript, format)
}

// enrolledServerSide negotiates a group and enrolls the credentials in it.
func (c *ExchangeCommand) enrolledServerSide(cfg *config.Config, logger *logging.ContextLogger, requested int, username, password string) (*serverSide, error) {
	grp, err := cfg.SelectGroup(requested)
	if err != nil {
		return nil, err
	}

	if requested != 0 && grp.ID != requested {
		logger.Warn("requested group not acceptable, using minimum group", map[string]any{
			"requested": requested,
			"group":     grp.ID,
		})
	}

	mode := cfg.XMode()
	v, err := srp.NewVerifier(c.Random, grp, username, password, mode)
	if err != nil {
		return nil, err
	}

	return &serverSide{group: grp, mode: mode, verifier: v}, nil
}

// storedServerSide resolves a stored record against the configured groups.
func storedServerSide(cfg *config.Config, record *protocol.VerifierRecord) (*serverSide, error) {
	grp, err := cfg.Group(record.GroupID)
	if err != nil {
		return nil, err
	}

	if record.Hash != "" {
		h, err := srp.ParseHash(record.Hash)
		if err != nil {
			return nil, err
		}
		if grp, err = grp.WithHash(h); err != nil {
			return nil, err
		}
	}

	mode, err := srp.ParseXMode(record.XMode)
	if err != nil {
		return nil, protocol.NewInvalidRequestError(err.Error())
	}

	v, err := record.ToVerifier(grp)
	if err != nil {
		return nil, err
	}

	return &serverSide{group: grp, mode: mode, verifier: v}, nil
}

// handshake runs client and server against each other in process.
//
//nolint:gocritic // A, B, M1 and M2 are capitalized per RFC 5054 SRP-6a specification
func (c *ExchangeCommand) handshake(side *serverSide, username, password string, showKey bool) (*protocol.ExchangeTranscript, error) {
	grp := side.group

	client := srp.NewClient(grp, username, password, srp.WithRandom(c.Random), srp.WithXMode(side.mode))
	defer client.ClearSecrets()

	server, err := srp.NewServer(grp, side.verifier, srp.WithRandom(c.Random))
	if err != nil {
		return nil, err
	}
	defer server.ClearSecrets()

	// Step 1: client -> server: username, A
	A, err := client.Start()
	if err != nil {
		return nil, fmt.Errorf("client start: %w", err)
	}

	// Step 2: server -> client: salt, B
	salt, B, err := server.Init(A)
	if err != nil {
		return nil, fmt.Errorf("server init: %w", err)
	}

	// Step 3: client -> server: M1
	if err := client.SetServerResponse(salt, B); err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}
	if err := client.ComputeSharedSecret(); err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}
	M1, err := client.Proof()
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	// Step 4: server -> client: M2
	M2, err := server.Verify(M1)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if err := client.VerifyServerProof(M2); err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	u, err := srp.ComputeU(grp.Hash, A, B, grp.ByteLen())
	if err != nil {
		return nil, err
	}

	transcript := &protocol.ExchangeTranscript{
		Username: username,
		GroupID:  grp.ID,
		Hash:     grp.Hash.String(),
		Salt:     srp.BytesToHex(salt),
		A:        srp.IntToHex(A, grp.ByteLen()),
		B:        srp.IntToHex(B, grp.ByteLen()),
		U:        srp.IntToHex(u, grp.Hash.Size()),
		M1:       srp.BytesToHex(M1),
		M2:       srp.BytesToHex(M2),
		Verified: true,
	}

	if showKey {
		K, err := client.SessionKey()
		if err != nil {
			return nil, err
		}
		transcript.SessionKey = srp.BytesToHex(K)
	}

	return transcript, nil
}

// readVerifierRecord reads a record written by the verifier command. JSON
// records parse as YAML.
//
//nolint:gosec // G304: Verifier path is from command-line argument
func readVerifierRecord(path string) (*protocol.VerifierRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, protocol.NewInvalidRequestError(fmt.Sprintf("failed to read verifier record: %v", err))
	}

	var record protocol.VerifierRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, protocol.NewInvalidRequestError(fmt.Sprintf("failed to parse verifier record: %v", err))
	}

	if record.Username == "" || record.Salt == "" || record.Verifier == "" || record.GroupID == 0 {
		return nil, protocol.NewInvalidRequestError("verifier record requires username, group, salt and verifier")
	}

	return &record, nil
}
