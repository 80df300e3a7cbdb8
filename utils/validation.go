// Package utils holds small validation helpers shared by the auth and bridge
// layers.
package utils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"github.com/arbfarm/walletlink/types"
)

// ValidateEVMAddress checks the 0x-prefixed 20-byte hex form.
func ValidateEVMAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid EVM address: %s", address)
	}
	return nil
}

// ValidateSolanaAddress checks the base58 32-byte public key form.
func ValidateSolanaAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return fmt.Errorf("invalid Solana address %s: %w", address, err)
	}
	return nil
}

// ValidateAddressForChain dispatches on chain family.
func ValidateAddressForChain(address string, chain types.ChainType) error {
	switch {
	case chain.IsEVM():
		return ValidateEVMAddress(address)
	case chain.IsSolana():
		return ValidateSolanaAddress(address)
	default:
		return fmt.Errorf("unknown chain type: %q", chain)
	}
}
