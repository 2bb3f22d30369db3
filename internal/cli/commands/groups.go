package commands

import (
	"github.com/fzdarsky/srp6a/internal/cli/output"
	"github.com/fzdarsky/srp6a/pkg/protocol"
)

const groupsUsage = `Usage: srp6a groups [flags]

List the configured SRP groups with their size, generator, hash and
multiplier k. Without --config the built-in RFC 5054 catalog is listed.
`

// GroupsCommand implements the 'groups' command.
type GroupsCommand struct {
	Streams
}

// NewGroupsCommand creates a new groups command instance.
func NewGroupsCommand() *GroupsCommand {
	return &GroupsCommand{Streams: DefaultStreams()}
}

// Execute runs the groups command and exits on error.
func (c *GroupsCommand) Execute(args []string) {
	if err := c.Run(args); err != nil {
		exitWithError(c.Err, err)
	}
}

// Run runs the groups command with the provided arguments.
func (c *GroupsCommand) Run(args []string) error {
	fs := newFlagSet("groups", c.Err, groupsUsage)
	outputFormat := fs.String("output", "yaml", "Output format (yaml or json)")
	modulus := fs.Bool("modulus", false, "Include the modulus N in hex")

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

	groups := cfg.Groups()
	infos := make([]protocol.GroupInfo, 0, len(groups))
	for _, grp := range groups {
		infos = append(infos, protocol.NewGroupInfo(grp, *modulus))
	}

	newLogger(cfg, c.Err).Debug("listing groups", map[string]any{
		"count":         len(infos),
		"default_group": cfg.SRP.DefaultGroup,
		"min_group":     cfg.SRP.MinGroup,
	})

	return output.Print(c.Out, infos, format)
}
