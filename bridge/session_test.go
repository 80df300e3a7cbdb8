package bridge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbfarm/walletlink/adapters"
	"github.com/arbfarm/walletlink/provider"
	"github.com/arbfarm/walletlink/types"
)

// relayFunc plays the page relay script: it receives one request and answers
// it. Returning a response with a nil Result and nil Error drops the request
// on the floor, like a popup the user never acts on.
type relayFunc func(req request) response

// startRelay stands up a Hub, connects a fake page to it, and runs fn as the
// page's relay loop. It returns the backend-side session.
func startRelay(t *testing.T, fn relayFunc) *Session {
	t.Helper()

	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	go func() {
		for {
			var req request
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			out := fn(req)
			if out.Result == nil && out.Error == nil {
				continue // unanswered, like a popup left open
			}
			out.ID = req.ID
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		}
	}()

	var session *Session
	require.Eventually(t, func() bool {
		ids := hub.SessionIDs()
		if len(ids) != 1 {
			return false
		}
		s, ok := hub.Session(ids[0])
		session = s
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	return session
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestSessionLookupEVMSlot(t *testing.T) {
	session := startRelay(t, func(req request) response {
		if req.Op != opLookup || req.Slot != "ethereum" {
			return response{Error: &provider.RPCError{Code: -32601, Message: "unexpected op"}}
		}
		return response{Result: rawJSON(t, slotDescriptor{
			Present:   true,
			Kind:      "evm",
			Flags:     []string{"isMetaMask"},
			Providers: [][]string{{"isRabby"}, {"isMetaMask"}},
		})}
	})

	v, ok := session.Lookup("ethereum")
	require.True(t, ok)

	slot, ok := v.(provider.EVMProviderSet)
	require.True(t, ok)

	entries := slot.Providers()
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Is("isMetaMask"))
	assert.True(t, entries[1].Is("isMetaMask"))

	self, ok := v.(provider.EVMProvider)
	require.True(t, ok)
	assert.True(t, self.Is("isMetaMask"))
}

func TestSessionLookupAbsentSlot(t *testing.T) {
	session := startRelay(t, func(req request) response {
		return response{Result: rawJSON(t, slotDescriptor{Present: false})}
	})

	_, ok := session.Lookup("ethereum")
	assert.False(t, ok)
}

func TestRemoteEVMRequest(t *testing.T) {
	session := startRelay(t, func(req request) response {
		switch req.Op {
		case opLookup:
			return response{Result: rawJSON(t, slotDescriptor{
				Present: true, Kind: "evm", Flags: []string{"isMetaMask"},
			})}
		case opEVMRequest:
			if req.Method == "eth_accounts" && req.Provider == slotSelf {
				return response{Result: rawJSON(t, []string{"0xabc"})}
			}
		}
		return response{Error: &provider.RPCError{Code: -32601, Message: "unexpected op"}}
	})

	v, ok := session.Lookup("ethereum")
	require.True(t, ok)
	p := v.(provider.EVMProvider)

	got, err := p.Request(context.Background(), "eth_accounts")
	require.NoError(t, err)
	assert.Equal(t, []any{"0xabc"}, got)
}

func TestRemoteEVMRequestError(t *testing.T) {
	session := startRelay(t, func(req request) response {
		if req.Op == opLookup {
			return response{Result: rawJSON(t, slotDescriptor{
				Present: true, Kind: "evm", Flags: []string{"isMetaMask"},
			})}
		}
		return response{Error: &provider.RPCError{Code: 4001, Message: "User rejected the request."}}
	})

	v, _ := session.Lookup("ethereum")
	p := v.(provider.EVMProvider)

	_, err := p.Request(context.Background(), "eth_requestAccounts")
	require.Error(t, err)

	var rpcErr *provider.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, provider.CodeUserRejected, rpcErr.Code)
}

func TestRemoteSolanaProvider(t *testing.T) {
	pubKey := solana.PublicKeyFromBytes(bytes.Repeat([]byte{7}, 32)).String()
	message := []byte("challenge")
	signature := []byte("signed-bytes")

	session := startRelay(t, func(req request) response {
		switch req.Op {
		case opLookup:
			return response{Result: rawJSON(t, slotDescriptor{
				Present: true, Kind: "solana", Flags: []string{"isPhantom"},
			})}
		case opSolConnect:
			return response{Result: rawJSON(t, solConnectResult{PublicKey: pubKey})}
		case opSolSign:
			decoded, err := base64.StdEncoding.DecodeString(req.Message)
			if err != nil || string(decoded) != string(message) {
				return response{Error: &provider.RPCError{Code: -32602, Message: "bad message"}}
			}
			return response{Result: rawJSON(t, solSignResult{
				Signature: base64.StdEncoding.EncodeToString(signature),
			})}
		case opSolConnected:
			return response{Result: rawJSON(t, true)}
		case opSolDisconnect:
			return response{Result: rawJSON(t, struct{}{})}
		}
		return response{Error: &provider.RPCError{Code: -32601, Message: "unexpected op"}}
	})

	v, ok := session.Lookup("phantom.solana")
	require.True(t, ok)
	p, ok := v.(provider.SolanaProvider)
	require.True(t, ok)
	assert.True(t, p.Is("isPhantom"))

	pub, err := p.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pubKey, pub.String())

	assert.True(t, p.Connected())

	sig, err := p.SignMessage(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, signature, sig)

	assert.NoError(t, p.Disconnect(context.Background()))
}

func TestCallRespectsCallerContext(t *testing.T) {
	session := startRelay(t, func(req request) response {
		if req.Op == opLookup {
			return response{Result: rawJSON(t, slotDescriptor{
				Present: true, Kind: "evm", Flags: []string{"isMetaMask"},
			})}
		}
		return response{} // never answered
	})

	v, _ := session.Lookup("ethereum")
	p := v.(provider.EVMProvider)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Request(ctx, "eth_requestAccounts")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseFailsPendingCalls(t *testing.T) {
	session := startRelay(t, func(req request) response {
		if req.Op == opLookup {
			return response{Result: rawJSON(t, slotDescriptor{
				Present: true, Kind: "evm", Flags: []string{"isMetaMask"},
			})}
		}
		return response{} // never answered
	})

	v, _ := session.Lookup("ethereum")
	p := v.(provider.EVMProvider)

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Request(context.Background(), "eth_requestAccounts")
		errCh <- err
	}()

	// Give the call a moment to register as pending, then kill the session.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, session.Close())

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSessionClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("pending call did not fail after close")
	}

	// Further calls fail immediately.
	_, err := p.Request(context.Background(), "eth_accounts")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestHubRemovesSessionWhenPageDisconnects(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}

	require.Eventually(t, func() bool {
		return len(hub.SessionIDs()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return len(hub.SessionIDs()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubRejectsPlainHTTP(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, hub.SessionIDs())
}

// The adapters work unchanged against a bridged page: this is the production
// wiring, MetaMask resolved and driven over the websocket.
func TestMetaMaskOverBridge(t *testing.T) {
	session := startRelay(t, func(req request) response {
		switch req.Op {
		case opLookup:
			if req.Slot != "ethereum" {
				return response{Result: rawJSON(t, slotDescriptor{Present: false})}
			}
			return response{Result: rawJSON(t, slotDescriptor{
				Present: true, Kind: "evm", Flags: []string{"isMetaMask"},
			})}
		case opEVMRequest:
			switch req.Method {
			case "eth_accounts", "eth_requestAccounts":
				return response{Result: rawJSON(t, []string{"0xabc"})}
			case "personal_sign":
				return response{Result: rawJSON(t, "0xSignedOverTheWire")}
			}
		}
		return response{Error: &provider.RPCError{Code: -32601, Message: "unexpected op"}}
	})

	m := adapters.NewMetaMask(session, nil, nil)
	require.True(t, m.Installed())

	conn := m.Connect(context.Background(), types.ChainEVM)
	require.True(t, conn.Success)
	assert.Equal(t, "0xabc", conn.Address)

	sig := m.SignMessage(context.Background(), "hello")
	require.True(t, sig.Success)
	assert.Equal(t, "0xsignedoverthewire", sig.Signature)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := startRelay(t, func(request) response { return response{} })
	b := startRelay(t, func(request) response { return response{} })
	assert.NotEqual(t, a.ID(), b.ID())
}
