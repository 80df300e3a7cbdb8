package adapters

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/arbfarm/walletlink/provider"
)

// In-memory stand-ins for the page globals. The fake environment maps slot
// paths to whatever a test wants injected there.

type fakeEnv struct {
	slots map[string]any
}

func envWith(slots map[string]any) *fakeEnv {
	return &fakeEnv{slots: slots}
}

func (e *fakeEnv) Lookup(slot string) (any, bool) {
	v, ok := e.slots[slot]
	return v, ok
}

type fakeEVMProvider struct {
	flags map[string]bool

	accounts        []string // eth_accounts answer
	requestAccounts []string // eth_requestAccounts answer
	accountsErr     error
	requestErr      error

	signResult any
	signErr    error

	balanceHex string

	calls          []string
	lastSignParams []any
}

func (p *fakeEVMProvider) Request(_ context.Context, method string, params ...any) (any, error) {
	p.calls = append(p.calls, method)
	switch method {
	case "eth_accounts":
		if p.accountsErr != nil {
			return nil, p.accountsErr
		}
		return toAnySlice(p.accounts), nil
	case "eth_requestAccounts":
		if p.requestErr != nil {
			return nil, p.requestErr
		}
		return toAnySlice(p.requestAccounts), nil
	case "personal_sign":
		p.lastSignParams = params
		if p.signErr != nil {
			return nil, p.signErr
		}
		return p.signResult, nil
	case "eth_getBalance":
		return p.balanceHex, nil
	default:
		return nil, fmt.Errorf("unexpected method %s", method)
	}
}

func (p *fakeEVMProvider) Is(flag string) bool {
	return p.flags[flag]
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// fakeEVMSlot models a contested injection slot: it carries its own flags
// and a providers array of competing wallets.
type fakeEVMSlot struct {
	fakeEVMProvider
	providers []provider.EVMProvider
}

func (s *fakeEVMSlot) Providers() []provider.EVMProvider {
	return s.providers
}

type fakeSolanaProvider struct {
	flags map[string]bool

	pub        solana.PublicKey
	connectErr error
	connected  bool

	sig     []byte
	signErr error

	disconnectErr   error
	disconnectCalls int
	signCalls       int
}

func (p *fakeSolanaProvider) Connect(context.Context) (solana.PublicKey, error) {
	if p.connectErr != nil {
		return solana.PublicKey{}, p.connectErr
	}
	p.connected = true
	return p.pub, nil
}

func (p *fakeSolanaProvider) Disconnect(context.Context) error {
	p.disconnectCalls++
	p.connected = false
	return p.disconnectErr
}

func (p *fakeSolanaProvider) SignMessage(_ context.Context, _ []byte) ([]byte, error) {
	p.signCalls++
	if p.signErr != nil {
		return nil, p.signErr
	}
	return p.sig, nil
}

func (p *fakeSolanaProvider) Connected() bool {
	return p.connected
}

func (p *fakeSolanaProvider) Is(flag string) bool {
	return p.flags[flag]
}

func metaMaskFlags() map[string]bool {
	return map[string]bool{"isMetaMask": true}
}

func phantomFlags() map[string]bool {
	return map[string]bool{"isPhantom": true}
}

func bitgetFlags() map[string]bool {
	return map[string]bool{"isBitKeep": true}
}

func testPubKey() solana.PublicKey {
	// Arbitrary fixed 32 bytes so assertions are deterministic.
	var raw [32]byte
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	return solana.PublicKeyFromBytes(raw[:])
}
