// Package provider defines the contracts for injected browser wallet
// providers. The shapes mirror what extensions attach to the page's global
// object: EVM wallets expose a single request/response RPC method, Solana
// wallets expose an object API. Nothing here reaches a real browser; concrete
// implementations live in the bridge package (remote page relay) or in test
// fakes.
package provider

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// Environment stands in for the page's global object. Lookup resolves a
// dotted slot path such as "ethereum" or "phantom.solana" to whatever the
// page has injected there. A nil Environment means no browser-like context is
// available; locators treat that as "nothing installed".
type Environment interface {
	Lookup(slot string) (any, bool)
}

// EVMProvider is the EIP-1193 style injected provider: one Request method
// carrying a JSON-RPC method name and positional params.
type EVMProvider interface {
	Request(ctx context.Context, method string, params ...any) (any, error)

	// Is reports a vendor-identifying boolean flag on the provider object,
	// e.g. "isMetaMask" or "isBitKeep". Used to disambiguate when several
	// wallets share one injection slot.
	Is(flag string) bool
}

// EVMProviderSet models the providers array some wallets append to
// window.ethereum when more than one extension is installed.
type EVMProviderSet interface {
	Providers() []EVMProvider
}

// SolanaProvider is the object-oriented injected provider convention used by
// Phantom-class wallets.
type SolanaProvider interface {
	Connect(ctx context.Context) (solana.PublicKey, error)
	Disconnect(ctx context.Context) error
	SignMessage(ctx context.Context, message []byte) ([]byte, error)

	// Connected mirrors the provider's isConnected property.
	Connected() bool

	Is(flag string) bool
}

// RPCError is the normalized shape of errors raised by injected providers.
// Vendor error objects carry a numeric code and a message; everything the
// adapters key their taxonomy on is preserved here.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// Well-known provider error codes.
const (
	CodeUserRejected   = 4001   // EIP-1193: user rejected the request
	CodeRequestPending = -32002 // a permission request is already open
	CodeInternalError  = -32603 // internal JSON-RPC error; wedged extension
)

// ErrWalletNotReady is returned by Solana providers when the extension is
// present but not in a usable state (locked, still initializing).
var ErrWalletNotReady = errors.New("wallet not ready")
