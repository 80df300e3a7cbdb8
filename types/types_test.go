package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainTypePredicates(t *testing.T) {
	assert.True(t, ChainEVM.IsEVM())
	assert.False(t, ChainEVM.IsSolana())
	assert.True(t, ChainSolana.IsSolana())
	assert.False(t, ChainSolana.IsEVM())

	assert.True(t, ChainEVM.Valid())
	assert.True(t, ChainSolana.Valid())
	assert.False(t, ChainType("").Valid())
	assert.False(t, ChainType("cosmos").Valid())
}

func TestParseChainType(t *testing.T) {
	got, err := ParseChainType("evm")
	require.NoError(t, err)
	assert.Equal(t, ChainEVM, got)

	got, err = ParseChainType("solana")
	require.NoError(t, err)
	assert.Equal(t, ChainSolana, got)

	_, err = ParseChainType("EVM")
	assert.Error(t, err)

	_, err = ParseChainType("")
	assert.Error(t, err)
}

func TestWalletInfoSupports(t *testing.T) {
	dual := WalletInfo{Chains: []ChainType{ChainEVM, ChainSolana}}
	assert.True(t, dual.Supports(ChainEVM))
	assert.True(t, dual.Supports(ChainSolana))
	assert.False(t, dual.Supports(ChainType("cosmos")))

	solOnly := WalletInfo{Chains: []ChainType{ChainSolana}}
	assert.False(t, solOnly.Supports(ChainEVM))
}

func TestFailureConstructors(t *testing.T) {
	conn := ConnectFailure(ChainEVM, "nope")
	assert.False(t, conn.Success)
	assert.Equal(t, ChainEVM, conn.Chain)
	assert.Equal(t, "nope", conn.Error)
	assert.Empty(t, conn.Address)

	sig := SignFailure("nope")
	assert.False(t, sig.Success)
	assert.Equal(t, "nope", sig.Error)
	assert.Empty(t, sig.Signature)
}
