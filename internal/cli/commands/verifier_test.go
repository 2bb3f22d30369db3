package commands_test

import (
	"errors"
	"testing"

	"github.com/fzdarsky/srp6a/internal/cli/commands"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"
)

const (
	rfcSalt = "BEB25379D1A8581EB5A727673A2441EE"
	rfcV    = "7E273DE8696FFC4F4E337D05B4B375BEB0DDE1569E8FA00A9886D8129BADA1F1" +
		"822223CA1A605B530E379BA4729FDC59F105B4787E5186F5C671085A1447B52A" +
		"48CF1970B4FB6F8400BBF4CEBFBB168152E08AB5EA53D15C1AFF87B2B9DA6E04" +
		"E058AD51CC72BFC9033B564E26480D78E955A5E29E7AB245DB2BE315E2099AFB"
)

func TestVerifierCommand_RFCVector(t *testing.T) {
	useConfig(t, "srp:\n  min_group: 1\n")
	ctrl := gomock.NewController(t)
	streams, out, _ := newStreams()

	cmd := &commands.VerifierCommand{
		Streams:   streams,
		Passwords: commands.NewMockPasswordReader(ctrl),
	}
	require.NoError(t, cmd.Run([]string{
		"--username", "alice",
		"--password", "password123",
		"--group", "1",
		"--salt", rfcSalt,
	}))

	var record protocol.VerifierRecord
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &record))

	assert.Equal(t, "alice", record.Username)
	assert.Equal(t, 1, record.GroupID)
	assert.Equal(t, "SHA-1", record.Hash)
	assert.Equal(t, "rfc5054", record.XMode)
	assert.Equal(t, rfcSalt, record.Salt)
	assert.Equal(t, rfcV, record.Verifier)
}

func TestVerifierCommand_PromptsTwice(t *testing.T) {
	useConfig(t, "")
	ctrl := gomock.NewController(t)
	passwords := commands.NewMockPasswordReader(ctrl)

	gomock.InOrder(
		passwords.EXPECT().ReadPassword("Password: ").Return("s3cret", nil),
		passwords.EXPECT().ReadPassword("Confirm password: ").Return("s3cret", nil),
	)

	streams, out, errOut := newStreams()
	cmd := &commands.VerifierCommand{Streams: streams, Passwords: passwords}
	require.NoError(t, cmd.Run([]string{"--username", "bob", "--output", "json"}))

	var record protocol.VerifierRecord
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &record))

	assert.Equal(t, 3, record.GroupID)
	assert.Equal(t, "SHA-256", record.Hash)
	assert.Len(t, record.Salt, 64, "salt is one SHA-256 digest long")
	assert.Len(t, record.Verifier, 512, "verifier is padded to 2048 bits")

	assert.NotContains(t, errOut.String(), "s3cret")
	assert.NotContains(t, errOut.String(), record.Salt, "salt is redacted from logs")
}

func TestVerifierCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		setup  func(*commands.MockPasswordReader)
		code   protocol.ErrorCode
	}{
		{
			name: "missing username",
			args: []string{"--password", "pw"},
			code: protocol.ErrCodeInvalidRequest,
		},
		{
			name: "passwords differ",
			args: []string{"--username", "bob"},
			setup: func(m *commands.MockPasswordReader) {
				m.EXPECT().ReadPassword("Password: ").Return("one", nil)
				m.EXPECT().ReadPassword("Confirm password: ").Return("two", nil)
			},
			code: protocol.ErrCodeInvalidRequest,
		},
		{
			name: "empty password",
			args: []string{"--username", "bob"},
			setup: func(m *commands.MockPasswordReader) {
				m.EXPECT().ReadPassword("Password: ").Return("", nil)
			},
			code: protocol.ErrCodeInvalidRequest,
		},
		{
			name: "prompt fails",
			args: []string{"--username", "bob"},
			setup: func(m *commands.MockPasswordReader) {
				m.EXPECT().ReadPassword(gomock.Any()).Return("", errors.New("no tty"))
			},
			code: protocol.ErrCodeSystemError,
		},
		{
			name: "group below minimum",
			args: []string{"--username", "bob", "--password", "pw", "--group", "2"},
			code: protocol.ErrCodeConfigurationError,
		},
		{
			name: "unknown group",
			args: []string{"--username", "bob", "--password", "pw", "--group", "99"},
			code: protocol.ErrCodeConfigurationError,
		},
		{
			name: "malformed salt",
			args: []string{"--username", "bob", "--password", "pw", "--salt", "ABC"},
			code: protocol.ErrCodeFormatError,
		},
		{
			name: "unknown x derivation",
			args: []string{"--username", "bob", "--password", "pw", "--x-derivation", "scrypt"},
			code: protocol.ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, tt.config)
			ctrl := gomock.NewController(t)
			passwords := commands.NewMockPasswordReader(ctrl)
			if tt.setup != nil {
				tt.setup(passwords)
			}

			streams, out, _ := newStreams()
			cmd := &commands.VerifierCommand{Streams: streams, Passwords: passwords}
			requireCode(t, cmd.Run(tt.args), tt.code)
			assert.Empty(t, out.String())
		})
	}
}

func TestVerifierCommand_SaltPasswordMode(t *testing.T) {
	useConfig(t, "srp:\n  min_group: 1\n  x_derivation: salt-password\n")
	streams, out, _ := newStreams()

	cmd := &commands.VerifierCommand{Streams: streams}
	require.NoError(t, cmd.Run([]string{
		"--username", "alice",
		"--password", "password123",
		"--salt", rfcSalt,
	}))

	var record protocol.VerifierRecord
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "salt-password", record.XMode)
	assert.NotEqual(t, rfcV, record.Verifier, "username is not part of x")
}
