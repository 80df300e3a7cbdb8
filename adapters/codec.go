package adapters

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
)

// Shared message/signature codec helpers. All adapters go through these so
// the backend sees one canonical signature format per chain family. Every
// function is pure and deterministic.

// EncodeMessage converts a message to the byte sequence providers sign.
func EncodeMessage(message string) []byte {
	return []byte(message)
}

// HexMessage encodes a message as 0x-prefixed hex, the wire form expected by
// personal_sign.
func HexMessage(message string) string {
	return hexutil.Encode([]byte(message))
}

// DecodeEVMSignature renders an EVM signature in its canonical 0x-hex form.
func DecodeEVMSignature(sig []byte) string {
	return hexutil.Encode(sig)
}

// NormalizeEVMSignature canonicalizes a signature already in string form.
func NormalizeEVMSignature(sig string) string {
	s := strings.ToLower(sig)
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return s
}

// DecodeSolanaSignature renders a Solana signature in its canonical base58
// form.
func DecodeSolanaSignature(sig []byte) string {
	return base58.Encode(sig)
}
