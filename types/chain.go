package types

import "fmt"

// ChainType classifies a wallet provider into a blockchain family.
// The set is closed: every supported wallet speaks either the EVM
// request/response convention or the Solana object convention.
type ChainType string

const (
	ChainEVM    ChainType = "evm"
	ChainSolana ChainType = "solana"
)

func (c ChainType) IsEVM() bool {
	return c == ChainEVM
}

func (c ChainType) IsSolana() bool {
	return c == ChainSolana
}

func (c ChainType) Valid() bool {
	return c == ChainEVM || c == ChainSolana
}

func (c ChainType) String() string {
	return string(c)
}

// ParseChainType converts a string into a ChainType.
func ParseChainType(s string) (ChainType, error) {
	switch ChainType(s) {
	case ChainEVM:
		return ChainEVM, nil
	case ChainSolana:
		return ChainSolana, nil
	default:
		return "", fmt.Errorf("unknown chain type: %q", s)
	}
}
