package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/arbfarm/walletlink/provider"
	"github.com/arbfarm/walletlink/types"
)

// solanaConnector speaks the object-oriented Solana injected-provider
// convention: connect(), signMessage(bytes), disconnect(), plus an
// isConnected property.
type solanaConnector struct {
	base *Base
}

func (c *solanaConnector) connect(ctx context.Context, p provider.SolanaProvider) *types.ConnectionResult {
	pub, err := p.Connect(ctx)
	if err != nil {
		return c.base.connectFailure(types.ChainSolana,
			mapSolanaError(err, c.base.info.Name, ErrMsgConnectionRejected, ErrMsgConnectionFailed))
	}

	// The stringified public key doubles as the address on Solana.
	address := pub.String()
	c.base.setConnected(types.ChainSolana, address, address)
	return &types.ConnectionResult{
		Success:   true,
		Chain:     types.ChainSolana,
		Address:   address,
		PublicKey: address,
	}
}

func (c *solanaConnector) signMessage(ctx context.Context, p provider.SolanaProvider, message string) *types.SignatureResult {
	if !p.Connected() {
		return c.base.signFailure(types.ChainSolana, ErrMsgNotConnected)
	}

	sig, err := p.SignMessage(ctx, EncodeMessage(message))
	if err != nil {
		return c.base.signFailure(types.ChainSolana,
			mapSolanaError(err, c.base.info.Name, ErrMsgSignatureRejected, ErrMsgSignatureFailed))
	}

	c.base.rec.IncCounter("sign_success", c.base.labels(types.ChainSolana))
	return &types.SignatureResult{Success: true, Signature: DecodeSolanaSignature(sig)}
}

// disconnect tears down the provider session. Errors mean the provider
// considers itself already disconnected; they are swallowed and the tracked
// state is cleared regardless.
func (c *solanaConnector) disconnect(ctx context.Context, p provider.SolanaProvider) {
	if p != nil {
		if err := p.Disconnect(ctx); err != nil {
			c.base.log.Debug("provider disconnect error ignored", map[string]any{
				"wallet": c.base.info.ID.String(),
				"error":  err.Error(),
			})
		}
	}
	c.base.clearConnected()
}

// mapSolanaError folds Phantom-class provider failures into the user-facing
// taxonomy. This wallet class is known to wedge: an internal RPC error
// (-32603 or an "Unexpected error" message) means the extension needs a hard
// reset, which is a distinct, user-actionable failure rather than a generic
// one.
func mapSolanaError(err error, walletName, rejectedMsg, fallback string) string {
	if errors.Is(err, provider.ErrWalletNotReady) {
		return NotReadyMessage(walletName)
	}

	var rpcErr *provider.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == provider.CodeInternalError {
		return WedgedMessage(walletName)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "User rejected"):
		return rejectedMsg
	case strings.Contains(msg, "Unexpected error"):
		return WedgedMessage(walletName)
	case msg != "":
		return msg
	default:
		return fallback
	}
}
