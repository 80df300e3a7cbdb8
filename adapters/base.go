package adapters

import (
	"sync"

	"github.com/arbfarm/walletlink/logger"
	"github.com/arbfarm/walletlink/metrics"
	"github.com/arbfarm/walletlink/provider"
	"github.com/arbfarm/walletlink/types"
)

// Base carries the state and collaborators shared by every concrete adapter.
// Concrete wallets embed it and add their own locator and connector wiring.
//
// The tracked connection state is the source of truth for "is connected" and
// "which provider to use when signing". Injected providers can lie or go
// stale, e.g. after an account switch, so adapters prefer this record over
// live interrogation.
type Base struct {
	info types.WalletInfo
	env  provider.Environment
	log  logger.Logger
	rec  metrics.Recorder

	mu        sync.Mutex
	chain     types.ChainType
	address   string
	publicKey string
}

// NewBase builds the shared adapter state. A nil logger or recorder falls
// back to the noop implementations.
func NewBase(info types.WalletInfo, env provider.Environment, log logger.Logger, rec metrics.Recorder) Base {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return Base{info: info, env: env, log: log, rec: rec}
}

// Info returns the wallet's static descriptor.
func (b *Base) Info() types.WalletInfo {
	return b.info
}

// Environment returns the global-object stand-in this adapter resolves
// providers from. Nil outside a browser-like context.
func (b *Base) Environment() provider.Environment {
	return b.env
}

// IsConnected reports the tracked connection state.
func (b *Base) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chain != ""
}

// ConnectedChain returns the chain family of the last successful connect, or
// the empty ChainType when disconnected.
func (b *Base) ConnectedChain() types.ChainType {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chain
}

// ConnectedAddress returns the authenticated address, or "" when
// disconnected.
func (b *Base) ConnectedAddress() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.address
}

// setConnected records a successful authentication, overwriting any prior
// state. Re-entrant connects simply re-confirm.
func (b *Base) setConnected(chain types.ChainType, address, publicKey string) {
	b.mu.Lock()
	b.chain = chain
	b.address = address
	b.publicKey = publicKey
	b.mu.Unlock()

	b.rec.IncCounter("connect_success", b.labels(chain))
	b.log.Info("wallet connected", map[string]any{
		"wallet":  b.info.ID.String(),
		"chain":   chain.String(),
		"address": address,
	})
}

// clearConnected drops the tracked state. Safe to call when already
// disconnected.
func (b *Base) clearConnected() {
	b.mu.Lock()
	wasConnected := b.chain != ""
	chain := b.chain
	b.chain = ""
	b.address = ""
	b.publicKey = ""
	b.mu.Unlock()

	if wasConnected {
		b.rec.IncCounter("disconnect", b.labels(chain))
		b.log.Info("wallet disconnected", map[string]any{
			"wallet": b.info.ID.String(),
			"chain":  chain.String(),
		})
	}
}

// connectedState snapshots the tracked state under one lock acquisition.
func (b *Base) connectedState() (chain types.ChainType, address string, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chain, b.address, b.chain != ""
}

func (b *Base) labels(chain types.ChainType) map[string]string {
	return map[string]string{
		"wallet": b.info.ID.String(),
		"chain":  chain.String(),
	}
}

func (b *Base) connectFailure(chain types.ChainType, msg string) *types.ConnectionResult {
	b.rec.IncCounter("connect_failure", b.labels(chain))
	b.log.Warn("wallet connect failed", map[string]any{
		"wallet": b.info.ID.String(),
		"chain":  chain.String(),
		"error":  msg,
	})
	return types.ConnectFailure(chain, msg)
}

func (b *Base) signFailure(chain types.ChainType, msg string) *types.SignatureResult {
	b.rec.IncCounter("sign_failure", b.labels(chain))
	b.log.Warn("wallet sign failed", map[string]any{
		"wallet": b.info.ID.String(),
		"chain":  chain.String(),
		"error":  msg,
	})
	return types.SignFailure(msg)
}
