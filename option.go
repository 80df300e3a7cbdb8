package walletlink

import (
	"errors"

	"github.com/arbfarm/walletlink/adapters"
	"github.com/arbfarm/walletlink/logger"
	"github.com/arbfarm/walletlink/metrics"
	"github.com/arbfarm/walletlink/provider"
)

var (
	ErrUnknownWallet    = errors.New("unknown wallet")
	ErrNoBalanceSupport = errors.New("wallet does not support balance queries")
)

type Option func(*WalletLink)

// WithEnvironment sets the global-object stand-in adapters resolve providers
// from, typically a bridge.Session in production or a fake in tests.
func WithEnvironment(env provider.Environment) Option {
	return func(w *WalletLink) {
		w.env = env
	}
}

func WithLogger(l logger.Logger) Option {
	return func(w *WalletLink) {
		w.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(w *WalletLink) {
		w.metrics = r
	}
}

// WithWallet registers an additional adapter after the defaults.
func WithWallet(a adapters.Adapter) Option {
	return func(w *WalletLink) {
		w.extra = append(w.extra, a)
	}
}

// WithoutDefaultWallets skips registration of the built-in adapters.
func WithoutDefaultWallets() Option {
	return func(w *WalletLink) {
		w.skipDefaults = true
	}
}
