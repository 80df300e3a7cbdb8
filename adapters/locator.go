package adapters

import (
	"github.com/arbfarm/walletlink/provider"
)

// Provider locators resolve which injected object actually belongs to a given
// vendor. Several EVM wallets fight over the same injection slot: some
// overwrite it, some append themselves to a providers array on it. The
// vendor-identifying flag is the only reliable discriminator. Locators run on
// every call and never cache, since the user can install or enable a
// competing wallet mid-session.

// locateEVMProvider resolves the EVM provider carrying the vendor flag at the
// given slot, or nil when the vendor's provider is not actually present even
// if another wallet's is.
func locateEVMProvider(env provider.Environment, slot, flag string) provider.EVMProvider {
	if env == nil {
		return nil
	}
	v, ok := env.Lookup(slot)
	if !ok || v == nil {
		return nil
	}

	// Multi-wallet collision: scan the providers array first.
	if set, ok := v.(provider.EVMProviderSet); ok {
		for _, p := range set.Providers() {
			if p != nil && p.Is(flag) {
				return p
			}
		}
	}

	if p, ok := v.(provider.EVMProvider); ok && p.Is(flag) {
		return p
	}
	return nil
}

// locateSolanaProvider resolves the vendor's Solana provider from the first
// matching slot. Wallets differ on where they inject (e.g. window.phantom.solana
// vs the legacy window.solana), so callers pass slots in preference order.
func locateSolanaProvider(env provider.Environment, flag string, slots ...string) provider.SolanaProvider {
	if env == nil {
		return nil
	}
	for _, slot := range slots {
		v, ok := env.Lookup(slot)
		if !ok || v == nil {
			continue
		}
		if p, ok := v.(provider.SolanaProvider); ok && p.Is(flag) {
			return p
		}
	}
	return nil
}
