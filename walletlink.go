// Package walletlink is the wallet-connection layer of the ArbFarm/Hecate
// trading dashboard: a uniform adapter interface over injected browser wallet
// providers (MetaMask, Phantom, Bitget), plus the relay and auth plumbing the
// dashboard backend needs around it.
package walletlink

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arbfarm/walletlink/adapters"
	"github.com/arbfarm/walletlink/logger"
	"github.com/arbfarm/walletlink/metrics"
	"github.com/arbfarm/walletlink/provider"
	"github.com/arbfarm/walletlink/types"
)

// WalletLink is the main entry point: an ordered registry of wallet adapters
// sharing one environment, with operation routing by wallet ID.
type WalletLink struct {
	env     provider.Environment
	logger  logger.Logger
	metrics metrics.Recorder

	registry map[types.WalletID]adapters.Adapter
	order    []types.WalletID

	skipDefaults bool
	extra        []adapters.Adapter
}

// New creates a WalletLink with the three built-in wallets registered, unless
// WithoutDefaultWallets is given. Without WithEnvironment every adapter
// reports not-installed, which is the correct behavior outside a browser
// session.
func New(opts ...Option) *WalletLink {
	w := &WalletLink{
		logger:   logger.NoopLogger{},
		metrics:  metrics.NoopRecorder{},
		registry: make(map[types.WalletID]adapters.Adapter),
	}

	for _, opt := range opts {
		opt(w)
	}

	if !w.skipDefaults {
		w.register(adapters.NewMetaMask(w.env, w.logger, w.metrics))
		w.register(adapters.NewPhantom(w.env, w.logger, w.metrics))
		w.register(adapters.NewBitget(w.env, w.logger, w.metrics))
	}
	for _, a := range w.extra {
		w.register(a)
	}

	return w
}

func (w *WalletLink) register(a adapters.Adapter) {
	id := a.Info().ID
	if _, exists := w.registry[id]; !exists {
		w.order = append(w.order, id)
	}
	w.registry[id] = a
}

// Wallets returns the static descriptors of every registered wallet, in
// registration order.
func (w *WalletLink) Wallets() []types.WalletInfo {
	infos := make([]types.WalletInfo, 0, len(w.order))
	for _, id := range w.order {
		infos = append(infos, w.registry[id].Info())
	}
	return infos
}

// Available returns the descriptors of the wallets whose extension is
// actually present in the environment.
func (w *WalletLink) Available() []types.WalletInfo {
	var infos []types.WalletInfo
	for _, id := range w.order {
		if a := w.registry[id]; a.Installed() {
			infos = append(infos, a.Info())
		}
	}
	return infos
}

// Wallet returns the adapter registered under the given ID.
func (w *WalletLink) Wallet(id types.WalletID) (adapters.Adapter, bool) {
	a, ok := w.registry[id]
	return a, ok
}

// Connect routes a connect request to the named wallet. Unknown wallets
// produce a failure result, matching the adapter boundary contract.
func (w *WalletLink) Connect(ctx context.Context, id types.WalletID, chain types.ChainType) *types.ConnectionResult {
	a, ok := w.registry[id]
	if !ok {
		return types.ConnectFailure(chain, "unknown wallet: "+id.String())
	}

	start := time.Now()
	res := a.Connect(ctx, chain)
	w.metrics.ObserveLatency("connect", time.Since(start), w.labels(id, res.Chain))
	return res
}

// Disconnect tears down the named wallet's session. Unknown IDs are a no-op.
func (w *WalletLink) Disconnect(ctx context.Context, id types.WalletID) {
	if a, ok := w.registry[id]; ok {
		a.Disconnect(ctx)
	}
}

// SignMessage routes a sign request to the named wallet.
func (w *WalletLink) SignMessage(ctx context.Context, id types.WalletID, message string) *types.SignatureResult {
	a, ok := w.registry[id]
	if !ok {
		return types.SignFailure("unknown wallet: " + id.String())
	}

	start := time.Now()
	res := a.SignMessage(ctx, message)
	w.metrics.ObserveLatency("sign", time.Since(start), w.labels(id, a.ConnectedChain()))
	return res
}

// Balance reports the named wallet's connected EVM balance in ether units.
// Wallets without EVM support return ErrNoBalanceSupport.
func (w *WalletLink) Balance(ctx context.Context, id types.WalletID) (decimal.Decimal, error) {
	a, ok := w.registry[id]
	if !ok {
		return decimal.Zero, ErrUnknownWallet
	}
	b, ok := a.(adapters.Balancer)
	if !ok {
		return decimal.Zero, ErrNoBalanceSupport
	}
	return b.Balance(ctx)
}

func (w *WalletLink) labels(id types.WalletID, chain types.ChainType) map[string]string {
	return map[string]string{
		"wallet": id.String(),
		"chain":  chain.String(),
	}
}

// Version information
const Version = "1.0.0"
