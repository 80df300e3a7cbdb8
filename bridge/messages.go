package bridge

import (
	"encoding/json"

	"github.com/arbfarm/walletlink/provider"
)

// Wire protocol between the backend and the page relay script. Every request
// carries a correlation ID; the relay answers with the same ID and either a
// result or a normalized provider error.

const (
	opLookup       = "lookup"
	opEVMRequest   = "evm_request"
	opSolConnect   = "sol_connect"
	opSolSign      = "sol_sign"
	opSolDisconnect = "sol_disconnect"
	opSolConnected = "sol_connected"
)

// slotSelf addresses the injection slot object itself rather than an entry
// of its providers array.
const slotSelf = -1

type request struct {
	ID   string `json:"id"`
	Op   string `json:"op"`
	Slot string `json:"slot,omitempty"`

	// Provider indexes into the slot's providers array; slotSelf targets
	// the slot object directly.
	Provider int `json:"provider"`

	Method string `json:"method,omitempty"`
	Params []any  `json:"params,omitempty"`

	// Message is base64 for sol_sign.
	Message string `json:"message,omitempty"`
}

type response struct {
	ID     string             `json:"id"`
	Result json.RawMessage    `json:"result,omitempty"`
	Error  *provider.RPCError `json:"error,omitempty"`
}

// slotDescriptor is the relay's answer to a lookup: whether the slot is
// populated, which convention it speaks, the vendor flags set on it, and the
// flags of each entry in its providers array if one exists.
type slotDescriptor struct {
	Present   bool       `json:"present"`
	Kind      string     `json:"kind,omitempty"` // "evm" or "solana"
	Flags     []string   `json:"flags,omitempty"`
	Providers [][]string `json:"providers,omitempty"`
}

type solConnectResult struct {
	PublicKey string `json:"publicKey"`
}

type solSignResult struct {
	Signature string `json:"signature"` // base64
}
