package adapters

import "fmt"

// User-facing failure messages. The view layer renders these verbatim, so
// they are phrased as guidance rather than internals.
const (
	// User declined a prompt.
	ErrMsgConnectionRejected = "Connection rejected by user"
	ErrMsgSignatureRejected  = "Signature rejected by user"

	// A permission request is already open in the extension UI. Retrying
	// blindly makes it worse; the user has to deal with the open popup.
	ErrMsgRequestPending = "Connection request already pending. Please check your wallet."

	// The provider answered but handed back no accounts.
	ErrMsgNoAccounts = "No accounts available"

	// Signing attempted without a prior successful connect.
	ErrMsgNotConnected = "Not connected. Connect a wallet before signing."

	// Generic fallbacks when the provider's error carries no message.
	ErrMsgConnectionFailed = "Connection failed"
	ErrMsgSignatureFailed  = "Signature failed"
)

// NotInstalledMessage names the missing wallet.
func NotInstalledMessage(wallet string) string {
	return fmt.Sprintf("%s not installed", wallet)
}

// WedgedMessage covers the Phantom-class failure where the extension's
// internal RPC breaks and only a hard reset recovers it.
func WedgedMessage(wallet string) string {
	return fmt.Sprintf("%s encountered an internal error. Try restarting your browser or re-enabling the extension.", wallet)
}

// NotReadyMessage covers the named "wallet not ready" provider condition.
func NotReadyMessage(wallet string) string {
	return fmt.Sprintf("%s is not ready. Make sure it is installed and unlocked.", wallet)
}

// UnsupportedChainMessage reports a chain the wallet cannot serve.
func UnsupportedChainMessage(wallet string, chain string) string {
	return fmt.Sprintf("%s does not support chain %q", wallet, chain)
}
