package srp_test

import (
	"crypto/sha256"
	"testing"

	"github.com/fzdarsky/srp6a/pkg/srp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHash(t *testing.T) {
	tests := []struct {
		input string
		want  srp.Hash
	}{
		{"SHA-1", srp.SHA1},
		{"sha1", srp.SHA1},
		{"SHA-256", srp.SHA256},
		{"sha256", srp.SHA256},
		{"Sha256", srp.SHA256},
		{"sha_256", srp.SHA256},
		{"SHA-384", srp.SHA384},
		{"sha-512", srp.SHA512},
		{" SHA512 ", srp.SHA512},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := srp.ParseHash(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHash_Unsupported(t *testing.T) {
	for _, name := range []string{"MD5", "SHA-224", "SHA3-256", ""} {
		t.Run(name, func(t *testing.T) {
			_, err := srp.ParseHash(name)
			assert.ErrorIs(t, err, srp.ErrUnsupportedHash)
		})
	}
}

func TestHash_Size(t *testing.T) {
	assert.Equal(t, 20, srp.SHA1.Size())
	assert.Equal(t, 32, srp.SHA256.Size())
	assert.Equal(t, 48, srp.SHA384.Size())
	assert.Equal(t, 64, srp.SHA512.Size())
	assert.Equal(t, 0, srp.Hash(0).Size())
}

func TestHash_String(t *testing.T) {
	assert.Equal(t, "SHA-1", srp.SHA1.String())
	assert.Equal(t, "SHA-512", srp.SHA512.String())
	assert.Equal(t, "Hash(42)", srp.Hash(42).String())
}

func TestHash_DigestConcatenates(t *testing.T) {
	want := sha256.Sum256([]byte("alice:password123"))
	got := srp.SHA256.Digest([]byte("alice"), []byte(":"), []byte("password123"))
	assert.Equal(t, want[:], got)
}

func TestHash_Text(t *testing.T) {
	var h srp.Hash
	require.NoError(t, h.UnmarshalText([]byte("sha384")))
	assert.Equal(t, srp.SHA384, h)

	text, err := h.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "SHA-384", string(text))

	assert.ErrorIs(t, h.UnmarshalText([]byte("md5")), srp.ErrUnsupportedHash)

	_, err = srp.Hash(0).MarshalText()
	assert.ErrorIs(t, err, srp.ErrUnsupportedHash)
}

func TestHash_NewPanicsForInvalid(t *testing.T) {
	assert.Panics(t, func() { srp.Hash(0).New() })
}
