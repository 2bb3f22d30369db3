package srp_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/fzdarsky/srp6a/pkg/srp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups_Catalog(t *testing.T) {
	tests := []struct {
		id   int
		bits int
		g    int64
		hash srp.Hash
	}{
		{srp.Group1024, 1024, 2, srp.SHA1},
		{srp.Group1536, 1536, 2, srp.SHA1},
		{srp.Group2048, 2048, 2, srp.SHA256},
		{srp.Group3072, 3072, 5, srp.SHA256},
		{srp.Group4096, 4096, 5, srp.SHA384},
		{srp.Group6144, 6144, 5, srp.SHA512},
		{srp.Group8192, 8192, 19, srp.SHA512},
	}

	groups := srp.Groups()
	require.Len(t, groups, len(tests))

	for i, tt := range tests {
		grp := groups[i]
		assert.Equal(t, tt.id, grp.ID)
		assert.Equal(t, tt.bits, grp.Bits())
		assert.Equal(t, tt.bits/8, grp.ByteLen())
		assert.Equal(t, tt.g, grp.G.Int64())
		assert.Equal(t, tt.hash, grp.Hash)
		assert.Equal(t, uint(1), grp.N.Bit(0), "N must be odd")
	}
}

func TestGroups_ReturnsCopyOfSlice(t *testing.T) {
	groups := srp.Groups()
	groups[0] = nil
	assert.NotNil(t, srp.Groups()[0])
}

func TestLookupGroup(t *testing.T) {
	grp, err := srp.LookupGroup(srp.Group2048)
	require.NoError(t, err)
	assert.Equal(t, "rfc5054-2048", grp.Name)

	_, err = srp.LookupGroup(99)
	assert.ErrorIs(t, err, srp.ErrInvalidGroup)
}

func TestSelectGroup(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		minimum   int
		want      int
	}{
		{name: "accepted", requested: srp.Group4096, minimum: srp.DefaultGroupID, want: srp.Group4096},
		{name: "minimum itself", requested: srp.Group2048, minimum: srp.DefaultGroupID, want: srp.Group2048},
		{name: "largest", requested: srp.Group8192, minimum: srp.DefaultGroupID, want: srp.Group8192},
		{name: "below minimum", requested: srp.Group1024, minimum: srp.DefaultGroupID, want: srp.DefaultGroupID},
		{name: "unknown", requested: 42, minimum: srp.DefaultGroupID, want: srp.DefaultGroupID},
		{name: "lower minimum", requested: srp.Group1024, minimum: srp.Group1024, want: srp.Group1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grp, err := srp.SelectGroup(tt.requested, tt.minimum)
			require.NoError(t, err)
			assert.Equal(t, tt.want, grp.ID)
		})
	}

	_, err := srp.SelectGroup(srp.Group2048, 0)
	assert.ErrorIs(t, err, srp.ErrInvalidGroup)
}

func TestNewGroup_Validation(t *testing.T) {
	n := mustInt(t, "EEAF0AB9ADB38DD69C33F80AFA8FC5E86072618775FF3C0B9EA2314C9C256577")
	even := new(big.Int).Sub(n, big.NewInt(1))

	tests := []struct {
		name    string
		n       *big.Int
		g       *big.Int
		hash    srp.Hash
		wantErr error
	}{
		{name: "valid", n: n, g: big.NewInt(2), hash: srp.SHA256},
		{name: "even modulus", n: even, g: big.NewInt(2), hash: srp.SHA256, wantErr: srp.ErrInvalidGroup},
		{name: "short modulus", n: big.NewInt(23), g: big.NewInt(5), hash: srp.SHA256, wantErr: srp.ErrInvalidGroup},
		{name: "generator one", n: n, g: big.NewInt(1), hash: srp.SHA256, wantErr: srp.ErrInvalidGroup},
		{name: "generator too large", n: n, g: n, hash: srp.SHA256, wantErr: srp.ErrInvalidGroup},
		{name: "missing modulus", g: big.NewInt(2), hash: srp.SHA256, wantErr: srp.ErrInvalidGroup},
		{name: "unsupported hash", n: n, g: big.NewInt(2), hash: srp.Hash(9), wantErr: srp.ErrUnsupportedHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grp, err := srp.NewGroup(1, "test", tt.n, tt.g, tt.hash)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 32, grp.ByteLen())
		})
	}
}

func TestParseGroup_InvalidHex(t *testing.T) {
	_, err := srp.ParseGroup(1, "bad", "XYZ0", 2, srp.SHA1)
	assert.ErrorIs(t, err, srp.ErrInvalidHex)
}

func TestGroup_Multiplier(t *testing.T) {
	grp := rfcGroup(t)
	assert.Equal(t, rfcK, srp.IntToHex(grp.Multiplier(), 0))

	sha256Grp, err := grp.WithHash(srp.SHA256)
	require.NoError(t, err)
	assert.Equal(t, sha256K, srp.IntToHex(sha256Grp.Multiplier(), 0))

	// The original group keeps its own cached value.
	assert.Equal(t, rfcK, srp.IntToHex(grp.Multiplier(), 0))
}

func TestGroup_MultiplierIsCopied(t *testing.T) {
	grp := rfcGroup(t)
	k := grp.Multiplier()
	k.SetInt64(0)
	assert.Equal(t, rfcK, srp.IntToHex(grp.Multiplier(), 0))
}

func TestGroup_MultiplierConcurrent(t *testing.T) {
	grp, err := srp.ParseGroup(1, "rfc", srp.IntToHex(rfcGroup(t).N, 0), 2, srp.SHA1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = srp.IntToHex(grp.Multiplier(), 0)
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, rfcK, r)
	}
}

func TestComputeMultiplier(t *testing.T) {
	grp := rfcGroup(t)
	assert.Equal(t, rfcK, srp.IntToHex(srp.ComputeMultiplier(grp.N, grp.G, srp.SHA1), 0))
	assert.Equal(t, rfcK, srp.DeriveMultiplier(srp.SHA1, grp))
}
