package types

// WalletID identifies a supported wallet vendor.
type WalletID string

const (
	WalletMetaMask WalletID = "metamask"
	WalletPhantom  WalletID = "phantom"
	WalletBitget   WalletID = "bitget"
)

func (id WalletID) String() string {
	return string(id)
}

// WalletInfo is the static descriptor of a wallet vendor. One instance is
// defined per adapter and never mutated after construction.
type WalletInfo struct {
	ID           WalletID    `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	IconURL      string      `json:"iconUrl,omitempty"`
	InstallURL   string      `json:"installUrl"`
	Chains       []ChainType `json:"chains"`
	DefaultChain ChainType   `json:"defaultChain"`
}

// Supports reports whether the wallet handles the given chain family.
func (w WalletInfo) Supports(chain ChainType) bool {
	for _, c := range w.Chains {
		if c == chain {
			return true
		}
	}
	return false
}

// ConnectionResult is the outcome of a connect attempt. Adapters return it as
// a value; failures never escape the adapter boundary as panics or errors.
type ConnectionResult struct {
	Success bool      `json:"success"`
	Chain   ChainType `json:"chain"`
	Address string    `json:"address,omitempty"`

	// PublicKey equals Address for Solana connections; empty for EVM.
	PublicKey string `json:"publicKey,omitempty"`

	Error string `json:"error,omitempty"`
}

// SignatureResult is the outcome of a sign-message attempt.
type SignatureResult struct {
	Success   bool   `json:"success"`
	Signature string `json:"signature,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ConnectFailure builds a failed ConnectionResult for a chain.
func ConnectFailure(chain ChainType, msg string) *ConnectionResult {
	return &ConnectionResult{Success: false, Chain: chain, Error: msg}
}

// SignFailure builds a failed SignatureResult.
func SignFailure(msg string) *SignatureResult {
	return &SignatureResult{Success: false, Error: msg}
}
