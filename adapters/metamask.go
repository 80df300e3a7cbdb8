package adapters

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/arbfarm/walletlink/logger"
	"github.com/arbfarm/walletlink/metrics"
	"github.com/arbfarm/walletlink/provider"
	"github.com/arbfarm/walletlink/types"
)

const (
	metaMaskSlot = "ethereum"
	metaMaskFlag = "isMetaMask"
)

var metaMaskInfo = types.WalletInfo{
	ID:           types.WalletMetaMask,
	Name:         "MetaMask",
	Description:  "EVM browser extension wallet",
	IconURL:      "https://static.arbfarm.io/wallets/metamask.svg",
	InstallURL:   "https://metamask.io/download/",
	Chains:       []types.ChainType{types.ChainEVM},
	DefaultChain: types.ChainEVM,
}

// MetaMask is the EVM-only adapter. Coinbase Wallet and others compete for
// the window.ethereum slot, so every lookup goes through the providers-array
// disambiguation in locateEVMProvider.
type MetaMask struct {
	Base
	evm evmConnector
}

var _ Adapter = (*MetaMask)(nil)
var _ Balancer = (*MetaMask)(nil)

func NewMetaMask(env provider.Environment, log logger.Logger, rec metrics.Recorder) *MetaMask {
	m := &MetaMask{Base: NewBase(metaMaskInfo, env, log, rec)}
	m.evm = evmConnector{base: &m.Base}
	return m
}

func (m *MetaMask) Installed() bool {
	return m.locate() != nil
}

func (m *MetaMask) Provider(chain types.ChainType) any {
	if chain != "" && !chain.IsEVM() {
		return nil
	}
	if p := m.locate(); p != nil {
		return p
	}
	return nil
}

func (m *MetaMask) Connect(ctx context.Context, chain types.ChainType) *types.ConnectionResult {
	if chain == "" {
		chain = m.Info().DefaultChain
	}
	if !m.Info().Supports(chain) {
		return m.connectFailure(chain, UnsupportedChainMessage(m.Info().Name, chain.String()))
	}

	p := m.locate()
	if p == nil {
		return m.connectFailure(chain, NotInstalledMessage(m.Info().Name))
	}
	return m.evm.connect(ctx, p)
}

// Disconnect clears tracked state. The EVM provider convention has no
// teardown call; revoking the site permission is the user's move.
func (m *MetaMask) Disconnect(_ context.Context) {
	m.clearConnected()
}

func (m *MetaMask) SignMessage(ctx context.Context, message string) *types.SignatureResult {
	p := m.locate()
	if p == nil {
		return m.signFailure(types.ChainEVM, NotInstalledMessage(m.Info().Name))
	}
	return m.evm.signMessage(ctx, p, message)
}

// Balance reports the connected account's balance in ether units.
func (m *MetaMask) Balance(ctx context.Context) (decimal.Decimal, error) {
	p := m.locate()
	if p == nil {
		return decimal.Zero, errNotInstalled(m.Info().Name)
	}
	return m.evm.balance(ctx, p)
}

func (m *MetaMask) locate() provider.EVMProvider {
	return locateEVMProvider(m.Environment(), metaMaskSlot, metaMaskFlag)
}
