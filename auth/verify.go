// Package auth issues dashboard sessions from wallet signatures: the view
// layer connects a wallet, signs a server-issued challenge, and trades
// (address, signature, message) for a session token.
package auth

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/arbfarm/walletlink/types"
)

// VerifySignature checks a wallet signature over a message for the given
// chain family. The signature formats match what the adapters produce:
// 0x-hex personal_sign output for EVM, base58 ed25519 output for Solana.
func VerifySignature(chain types.ChainType, address, message, signature string) error {
	switch {
	case chain.IsEVM():
		return VerifyEVMPersonalSignature(address, message, signature)
	case chain.IsSolana():
		return VerifySolanaSignature(address, message, signature)
	default:
		return fmt.Errorf("unknown chain type: %q", chain)
	}
}

// VerifyEVMPersonalSignature recovers the signer of an EIP-191 personal_sign
// signature and compares it to the claimed address. Wallets return V as 27/28
// while go-ethereum expects 0/1, so both are accepted.
func VerifyEVMPersonalSignature(address, message, signature string) error {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return fmt.Errorf("malformed signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	if sig[64] >= 27 {
		sig = append(append([]byte{}, sig[:64]...), sig[64]-27)
	}

	digest := personalSignHash(message)
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return fmt.Errorf("signature recovery failed: %w", err)
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if !strings.EqualFold(recovered.Hex(), address) {
		return fmt.Errorf("signature recovered %s, want %s", recovered.Hex(), address)
	}
	return nil
}

// personalSignHash applies the EIP-191 "\x19Ethereum Signed Message" prefix
// before hashing, matching what personal_sign signs.
func personalSignHash(message string) []byte {
	data := []byte(message)
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(data), data)
	return crypto.Keccak256([]byte(prefixed))
}

// VerifySolanaSignature checks an ed25519 signature against the base58
// public key that doubles as the Solana address.
func VerifySolanaSignature(address, message, signature string) error {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return fmt.Errorf("malformed address: %w", err)
	}

	sig, err := base58.Decode(signature)
	if err != nil {
		return fmt.Errorf("malformed signature: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}

	if !ed25519.Verify(ed25519.PublicKey(pub[:]), []byte(message), sig) {
		return fmt.Errorf("signature does not match address %s", address)
	}
	return nil
}
