package bridge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/arbfarm/walletlink/provider"
)

// Remote provider handles. Each forwards one injected object's calls over
// the session; vendor flags come from the lookup descriptor so Is() stays
// synchronous and cheap.

type remoteEVMProvider struct {
	session *Session
	slot    string
	index   int
	flags   map[string]bool
}

var _ provider.EVMProvider = (*remoteEVMProvider)(nil)

func (p *remoteEVMProvider) Request(ctx context.Context, method string, params ...any) (any, error) {
	raw, err := p.session.call(ctx, request{
		Op:       opEVMRequest,
		Slot:     p.slot,
		Provider: p.index,
		Method:   method,
		Params:   params,
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed %s result: %w", method, err)
	}
	return result, nil
}

func (p *remoteEVMProvider) Is(flag string) bool {
	return p.flags[flag]
}

// remoteEVMSlot is the slot object itself. It answers Request/Is directly
// and, when the page reported a providers array, exposes its entries for the
// multi-wallet disambiguation scan.
type remoteEVMSlot struct {
	remoteEVMProvider
	providers []provider.EVMProvider
}

var _ provider.EVMProviderSet = (*remoteEVMSlot)(nil)

func newRemoteEVMSlot(s *Session, slot string, desc slotDescriptor) *remoteEVMSlot {
	out := &remoteEVMSlot{
		remoteEVMProvider: remoteEVMProvider{
			session: s,
			slot:    slot,
			index:   slotSelf,
			flags:   flagSet(desc.Flags),
		},
	}
	for i, entryFlags := range desc.Providers {
		out.providers = append(out.providers, &remoteEVMProvider{
			session: s,
			slot:    slot,
			index:   i,
			flags:   flagSet(entryFlags),
		})
	}
	return out
}

func (s *remoteEVMSlot) Providers() []provider.EVMProvider {
	return s.providers
}

type remoteSolanaProvider struct {
	session *Session
	slot    string
	flags   map[string]bool
}

var _ provider.SolanaProvider = (*remoteSolanaProvider)(nil)

func newRemoteSolanaProvider(s *Session, slot string, flags []string) *remoteSolanaProvider {
	return &remoteSolanaProvider{session: s, slot: slot, flags: flagSet(flags)}
}

func (p *remoteSolanaProvider) Connect(ctx context.Context) (solana.PublicKey, error) {
	raw, err := p.session.call(ctx, request{Op: opSolConnect, Slot: p.slot, Provider: slotSelf})
	if err != nil {
		return solana.PublicKey{}, err
	}

	var result solConnectResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return solana.PublicKey{}, fmt.Errorf("malformed connect result: %w", err)
	}
	pub, err := solana.PublicKeyFromBase58(result.PublicKey)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("malformed public key %q: %w", result.PublicKey, err)
	}
	return pub, nil
}

func (p *remoteSolanaProvider) Disconnect(ctx context.Context) error {
	_, err := p.session.call(ctx, request{Op: opSolDisconnect, Slot: p.slot, Provider: slotSelf})
	return err
}

func (p *remoteSolanaProvider) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	raw, err := p.session.call(ctx, request{
		Op:       opSolSign,
		Slot:     p.slot,
		Provider: slotSelf,
		Message:  base64.StdEncoding.EncodeToString(message),
	})
	if err != nil {
		return nil, err
	}

	var result solSignResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed sign result: %w", err)
	}
	sig, err := base64.StdEncoding.DecodeString(result.Signature)
	if err != nil {
		return nil, fmt.Errorf("malformed signature encoding: %w", err)
	}
	return sig, nil
}

// Connected reads the provider's live isConnected property. Failures count
// as not connected; the adapter's tracked state is the real source of truth.
func (p *remoteSolanaProvider) Connected() bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	raw, err := p.session.call(ctx, request{Op: opSolConnected, Slot: p.slot, Provider: slotSelf})
	if err != nil {
		return false
	}
	var connected bool
	if err := json.Unmarshal(raw, &connected); err != nil {
		return false
	}
	return connected
}

func (p *remoteSolanaProvider) Is(flag string) bool {
	return p.flags[flag]
}

func flagSet(flags []string) map[string]bool {
	set := make(map[string]bool, len(flags))
	for _, f := range flags {
		set[f] = true
	}
	return set
}
