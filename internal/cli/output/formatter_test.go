package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fzdarsky/srp6a/internal/cli/output"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var record = protocol.VerifierRecord{
	Username: "alice",
	GroupID:  1,
	Hash:     "SHA-1",
	XMode:    "rfc5054",
	Salt:     "BEB25379D1A8581EB5A727673A2441EE",
	Verifier: "7E273DE8",
}

func TestFormatData_YAML(t *testing.T) {
	out, err := output.FormatData(record, output.FormatYAML)
	require.NoError(t, err)

	assert.Contains(t, out, "username: alice\n")
	assert.Contains(t, out, "x_derivation: rfc5054\n")

	var decoded protocol.VerifierRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, record, decoded)
}

func TestFormatData_JSON(t *testing.T) {
	out, err := output.FormatData(record, output.FormatJSON)
	require.NoError(t, err)

	assert.Contains(t, out, "\n  \"username\": \"alice\",\n")
	assert.Equal(t, byte('\n'), out[len(out)-1])

	var decoded protocol.VerifierRecord
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, record, decoded)
}

func TestFormatData_Unsupported(t *testing.T) {
	_, err := output.FormatData(record, output.Format("xml"))
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Print(&buf, map[string]int{"group": 3}, output.FormatJSON))
	assert.JSONEq(t, `{"group":3}`, buf.String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    output.Format
		wantErr bool
	}{
		{input: "yaml", want: output.FormatYAML},
		{input: "yml", want: output.FormatYAML},
		{input: "JSON", want: output.FormatJSON},
		{input: "toml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := output.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
