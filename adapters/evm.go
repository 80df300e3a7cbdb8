package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/arbfarm/walletlink/provider"
	"github.com/arbfarm/walletlink/types"
)

// evmConnector speaks the EVM injected-provider convention: a single
// request({method, params}) RPC call. It is embedded by every adapter that
// serves an EVM chain and records outcomes on the shared Base state.
type evmConnector struct {
	base *Base
}

// connect negotiates account access. eth_accounts is tried first because it
// never prompts; only when the wallet has no authorized account does the
// connector escalate to eth_requestAccounts, which opens the permission
// popup. The popup promise resolves only when the user dismisses it, so the
// caller's ctx is the sole cancellation mechanism.
func (c *evmConnector) connect(ctx context.Context, p provider.EVMProvider) *types.ConnectionResult {
	accounts, err := c.requestAccounts(ctx, p, "eth_accounts")
	if err != nil {
		return c.base.connectFailure(types.ChainEVM, mapEVMError(err, ErrMsgConnectionRejected, ErrMsgConnectionFailed))
	}

	if len(accounts) == 0 {
		accounts, err = c.requestAccounts(ctx, p, "eth_requestAccounts")
		if err != nil {
			return c.base.connectFailure(types.ChainEVM, mapEVMError(err, ErrMsgConnectionRejected, ErrMsgConnectionFailed))
		}
	}

	if len(accounts) == 0 {
		return c.base.connectFailure(types.ChainEVM, ErrMsgNoAccounts)
	}

	address := accounts[0]
	c.base.setConnected(types.ChainEVM, address, "")
	return &types.ConnectionResult{
		Success: true,
		Chain:   types.ChainEVM,
		Address: address,
	}
}

// signMessage issues personal_sign with [message, address]. The address is
// the internally tracked one, not a live eth_accounts query: if the user
// switches accounts mid-session the signature must still come from the
// address the session authenticated with.
func (c *evmConnector) signMessage(ctx context.Context, p provider.EVMProvider, message string) *types.SignatureResult {
	chain, address, ok := c.base.connectedState()
	if !ok || !chain.IsEVM() {
		return c.base.signFailure(types.ChainEVM, ErrMsgNotConnected)
	}

	res, err := p.Request(ctx, "personal_sign", HexMessage(message), address)
	if err != nil {
		return c.base.signFailure(types.ChainEVM, mapEVMError(err, ErrMsgSignatureRejected, ErrMsgSignatureFailed))
	}

	var signature string
	switch v := res.(type) {
	case string:
		signature = NormalizeEVMSignature(v)
	case []byte:
		signature = DecodeEVMSignature(v)
	default:
		return c.base.signFailure(types.ChainEVM, fmt.Sprintf("unexpected personal_sign result type %T", res))
	}

	c.base.rec.IncCounter("sign_success", c.base.labels(types.ChainEVM))
	return &types.SignatureResult{Success: true, Signature: signature}
}

// balance fetches the tracked address's balance in ether units via
// eth_getBalance. Used by the portfolio view; requires a prior connect.
func (c *evmConnector) balance(ctx context.Context, p provider.EVMProvider) (decimal.Decimal, error) {
	chain, address, ok := c.base.connectedState()
	if !ok || !chain.IsEVM() {
		return decimal.Zero, errors.New("no EVM connection")
	}

	res, err := p.Request(ctx, "eth_getBalance", address, "latest")
	if err != nil {
		return decimal.Zero, err
	}
	hexWei, ok := res.(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("unexpected eth_getBalance result type %T", res)
	}
	wei, err := hexutil.DecodeBig(hexWei)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad balance %q: %w", hexWei, err)
	}
	return decimal.NewFromBigInt(wei, -18), nil
}

// requestAccounts normalizes the account-list shapes providers hand back.
func (c *evmConnector) requestAccounts(ctx context.Context, p provider.EVMProvider, method string) ([]string, error) {
	res, err := p.Request(ctx, method)
	if err != nil {
		return nil, err
	}

	switch v := res.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		accounts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				accounts = append(accounts, s)
			}
		}
		return accounts, nil
	default:
		return nil, fmt.Errorf("unexpected %s result type %T", method, res)
	}
}

// mapEVMError folds a provider exception into the user-facing taxonomy:
// 4001 is a user rejection, -32002 a request already pending in the wallet
// UI. Anything else surfaces the provider's own message, falling back to a
// generic one when it has none.
func mapEVMError(err error, rejectedMsg, fallback string) string {
	var rpcErr *provider.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case provider.CodeUserRejected:
			return rejectedMsg
		case provider.CodeRequestPending:
			return ErrMsgRequestPending
		}
		if rpcErr.Message != "" {
			return rpcErr.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
