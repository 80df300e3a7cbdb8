// Package adapters implements the uniform wallet capability contract over
// heterogeneous injected browser providers. Each wallet vendor injects a
// differently shaped global object with its own method names and error
// conventions; the Adapter interface hides those quirks so calling code can
// treat every wallet the same way.
package adapters

import (
	"context"

	"github.com/arbfarm/walletlink/types"
)

// Adapter is the capability set every supported wallet implements.
//
// No method returns a Go error: connect and sign outcomes are carried as
// result values so the view layer never needs recover/try-catch semantics
// around wallet calls. Provider exceptions are caught at the lowest call site
// and normalized into the result's Error field.
type Adapter interface {
	// Info returns the wallet's static descriptor.
	Info() types.WalletInfo

	// Installed reports whether the wallet's injected global is present.
	// It is synchronous, side-effect free, and returns false rather than
	// panicking when no browser-like environment exists.
	Installed() bool

	// Provider locates the chain-specific injected provider object, or nil
	// when it is unavailable or the chain is unsupported by this wallet.
	// The concrete type is provider.EVMProvider or provider.SolanaProvider.
	// The lookup runs fresh on every call; a competing wallet can be
	// installed mid-session.
	Provider(chain types.ChainType) any

	// Connect requests account access from the user. An empty chain selects
	// the wallet's default chain. Re-entrant calls re-authenticate and
	// overwrite prior state on success.
	Connect(ctx context.Context, chain types.ChainType) *types.ConnectionResult

	// Disconnect is best-effort and idempotent: provider-level disconnect
	// errors are swallowed and internal state is always cleared.
	Disconnect(ctx context.Context)

	// SignMessage signs an arbitrary UTF-8 string using the chain the
	// adapter is currently connected to.
	SignMessage(ctx context.Context, message string) *types.SignatureResult

	// IsConnected reports connection state, preferring internally tracked
	// state over live provider interrogation.
	IsConnected() bool

	// ConnectedChain returns the chain family of the last successful
	// connect, or the empty ChainType when disconnected.
	ConnectedChain() types.ChainType

	// ConnectedAddress returns the authenticated address, or "" when
	// disconnected.
	ConnectedAddress() string
}
