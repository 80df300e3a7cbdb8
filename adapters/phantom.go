package adapters

import (
	"context"

	"github.com/arbfarm/walletlink/logger"
	"github.com/arbfarm/walletlink/metrics"
	"github.com/arbfarm/walletlink/provider"
	"github.com/arbfarm/walletlink/types"
)

const phantomFlag = "isPhantom"

// Phantom injects under window.phantom.solana on current builds and under
// the legacy window.solana on older ones; both are checked in that order.
var phantomSlots = []string{"phantom.solana", "solana"}

var phantomInfo = types.WalletInfo{
	ID:           types.WalletPhantom,
	Name:         "Phantom",
	Description:  "Solana browser extension wallet",
	IconURL:      "https://static.arbfarm.io/wallets/phantom.svg",
	InstallURL:   "https://phantom.app/download",
	Chains:       []types.ChainType{types.ChainSolana},
	DefaultChain: types.ChainSolana,
}

// Phantom is the Solana-only adapter. It carries the richest provider error
// taxonomy: beyond user rejections, the extension is known to wedge into a
// state only a browser restart fixes, and that condition is surfaced
// distinctly.
type Phantom struct {
	Base
	sol solanaConnector
}

var _ Adapter = (*Phantom)(nil)

func NewPhantom(env provider.Environment, log logger.Logger, rec metrics.Recorder) *Phantom {
	p := &Phantom{Base: NewBase(phantomInfo, env, log, rec)}
	p.sol = solanaConnector{base: &p.Base}
	return p
}

func (p *Phantom) Installed() bool {
	return p.locate() != nil
}

func (p *Phantom) Provider(chain types.ChainType) any {
	if chain != "" && !chain.IsSolana() {
		return nil
	}
	if sp := p.locate(); sp != nil {
		return sp
	}
	return nil
}

func (p *Phantom) Connect(ctx context.Context, chain types.ChainType) *types.ConnectionResult {
	if chain == "" {
		chain = p.Info().DefaultChain
	}
	if !p.Info().Supports(chain) {
		return p.connectFailure(chain, UnsupportedChainMessage(p.Info().Name, chain.String()))
	}

	sp := p.locate()
	if sp == nil {
		return p.connectFailure(chain, NotInstalledMessage(p.Info().Name))
	}
	return p.sol.connect(ctx, sp)
}

func (p *Phantom) Disconnect(ctx context.Context) {
	p.sol.disconnect(ctx, p.locate())
}

func (p *Phantom) SignMessage(ctx context.Context, message string) *types.SignatureResult {
	sp := p.locate()
	if sp == nil {
		return p.signFailure(types.ChainSolana, NotInstalledMessage(p.Info().Name))
	}
	return p.sol.signMessage(ctx, sp, message)
}

func (p *Phantom) locate() provider.SolanaProvider {
	return locateSolanaProvider(p.Environment(), phantomFlag, phantomSlots...)
}
