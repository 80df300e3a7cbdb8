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
	bitgetEVMSlot    = "bitkeep.ethereum"
	bitgetSolanaSlot = "bitkeep.solana"
	bitgetFlag       = "isBitKeep"
)

var bitgetInfo = types.WalletInfo{
	ID:           types.WalletBitget,
	Name:         "Bitget Wallet",
	Description:  "Multi-chain browser extension wallet (EVM and Solana)",
	IconURL:      "https://static.arbfarm.io/wallets/bitget.svg",
	InstallURL:   "https://web3.bitget.com/wallet-download",
	Chains:       []types.ChainType{types.ChainEVM, types.ChainSolana},
	DefaultChain: types.ChainEVM,
}

// Bitget serves both chain families from one extension. SignMessage has no
// chain parameter, so intent is inferred from the chain recorded by the last
// successful Connect. Routing by whichever provider object happens to be
// truthy is wrong: with both providers injected but only one authenticated,
// it signs on the wrong chain.
type Bitget struct {
	Base
	evm evmConnector
	sol solanaConnector
}

var _ Adapter = (*Bitget)(nil)
var _ Balancer = (*Bitget)(nil)

func NewBitget(env provider.Environment, log logger.Logger, rec metrics.Recorder) *Bitget {
	b := &Bitget{Base: NewBase(bitgetInfo, env, log, rec)}
	b.evm = evmConnector{base: &b.Base}
	b.sol = solanaConnector{base: &b.Base}
	return b
}

// Installed reports true when either chain family's provider is present.
func (b *Bitget) Installed() bool {
	return b.locateEVM() != nil || b.locateSolana() != nil
}

func (b *Bitget) Provider(chain types.ChainType) any {
	switch {
	case chain.IsEVM():
		if p := b.locateEVM(); p != nil {
			return p
		}
	case chain.IsSolana():
		if p := b.locateSolana(); p != nil {
			return p
		}
	}
	return nil
}

func (b *Bitget) Connect(ctx context.Context, chain types.ChainType) *types.ConnectionResult {
	if chain == "" {
		chain = b.Info().DefaultChain
	}

	switch {
	case chain.IsEVM():
		p := b.locateEVM()
		if p == nil {
			return b.connectFailure(chain, NotInstalledMessage(b.Info().Name))
		}
		return b.evm.connect(ctx, p)
	case chain.IsSolana():
		p := b.locateSolana()
		if p == nil {
			return b.connectFailure(chain, NotInstalledMessage(b.Info().Name))
		}
		return b.sol.connect(ctx, p)
	default:
		return b.connectFailure(chain, UnsupportedChainMessage(b.Info().Name, chain.String()))
	}
}

// Disconnect tears down whichever chain family is authenticated. The Solana
// provider gets a best-effort disconnect call; EVM has none. Tracked state is
// cleared in every path.
func (b *Bitget) Disconnect(ctx context.Context) {
	if b.ConnectedChain().IsSolana() {
		b.sol.disconnect(ctx, b.locateSolana())
		return
	}
	b.clearConnected()
}

// SignMessage routes by the tracked connected chain, never by provider
// presence order.
func (b *Bitget) SignMessage(ctx context.Context, message string) *types.SignatureResult {
	chain, _, ok := b.connectedState()
	if !ok {
		return b.signFailure("", ErrMsgNotConnected)
	}

	switch {
	case chain.IsEVM():
		p := b.locateEVM()
		if p == nil {
			return b.signFailure(chain, NotInstalledMessage(b.Info().Name))
		}
		return b.evm.signMessage(ctx, p, message)
	case chain.IsSolana():
		p := b.locateSolana()
		if p == nil {
			return b.signFailure(chain, NotInstalledMessage(b.Info().Name))
		}
		return b.sol.signMessage(ctx, p, message)
	default:
		return b.signFailure(chain, ErrMsgNotConnected)
	}
}

// Balance reports the connected EVM account's balance in ether units.
func (b *Bitget) Balance(ctx context.Context) (decimal.Decimal, error) {
	p := b.locateEVM()
	if p == nil {
		return decimal.Zero, errNotInstalled(b.Info().Name)
	}
	return b.evm.balance(ctx, p)
}

func (b *Bitget) locateEVM() provider.EVMProvider {
	return locateEVMProvider(b.Environment(), bitgetEVMSlot, bitgetFlag)
}

func (b *Bitget) locateSolana() provider.SolanaProvider {
	return locateSolanaProvider(b.Environment(), bitgetFlag, bitgetSolanaSlot)
}
