// Package bridge relays injected-provider traffic between the dashboard
// backend and a browser page. The page runs a small relay script holding the
// real window globals; the backend holds a Session per page, which satisfies
// provider.Environment so the wallet adapters work unchanged on either side
// of the wire.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/arbfarm/walletlink/logger"
	"github.com/arbfarm/walletlink/provider"
)

var ErrSessionClosed = errors.New("bridge session closed")

// lookupTimeout bounds structural queries (slot lookups, isConnected reads).
// Wallet popups are NOT bounded here: connect and sign calls run on the
// caller's context alone, since a popup legitimately stays open until the
// user acts on it.
const lookupTimeout = 10 * time.Second

// Session is one connected page. It owns the websocket: a single read pump
// dispatches responses to pending calls, and writes are serialized by a
// mutex.
type Session struct {
	id   string
	conn *websocket.Conn
	log  logger.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan response
	closed  bool

	done    chan struct{}
	onClose func(*Session)
}

// NewSession wraps an accepted websocket connection and starts its read
// pump. onClose, if set, runs once when the session dies.
func NewSession(conn *websocket.Conn, log logger.Logger, onClose func(*Session)) *Session {
	if log == nil {
		log = logger.NoopLogger{}
	}
	s := &Session{
		id:      uuid.NewString(),
		conn:    conn,
		log:     log,
		pending: make(map[string]chan response),
		done:    make(chan struct{}),
		onClose: onClose,
	}
	go s.readPump()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Lookup implements provider.Environment: it asks the page relay to describe
// the slot and wraps the answer in remote provider handles. Each call is a
// fresh query; the page's wallet population can change between calls.
func (s *Session) Lookup(slot string) (any, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	raw, err := s.call(ctx, request{Op: opLookup, Slot: slot, Provider: slotSelf})
	if err != nil {
		s.log.Debug("slot lookup failed", map[string]any{
			"session": s.id,
			"slot":    slot,
			"error":   err.Error(),
		})
		return nil, false
	}

	var desc slotDescriptor
	if err := json.Unmarshal(raw, &desc); err != nil || !desc.Present {
		return nil, false
	}

	switch desc.Kind {
	case "evm":
		return newRemoteEVMSlot(s, slot, desc), true
	case "solana":
		return newRemoteSolanaProvider(s, slot, desc.Flags), true
	default:
		return nil, false
	}
}

// call sends one request and waits for its correlated response. The caller's
// context is the only timeout: a pending wallet popup keeps the call open
// indefinitely by design.
func (s *Session) call(ctx context.Context, req request) (json.RawMessage, error) {
	req.ID = uuid.NewString()
	ch := make(chan response, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.pending[req.ID] = ch
	s.mu.Unlock()

	s.writeMu.Lock()
	err := s.conn.WriteJSON(req)
	s.writeMu.Unlock()
	if err != nil {
		s.unregister(req.ID)
		s.Close()
		return nil, err
	}

	select {
	case <-ctx.Done():
		s.unregister(req.ID)
		return nil, ctx.Err()
	case <-s.done:
		return nil, ErrSessionClosed
	case resp := <-ch:
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	}
}

func (s *Session) unregister(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

func (s *Session) readPump() {
	defer s.Close()
	for {
		var resp response
		if err := s.conn.ReadJSON(&resp); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("bridge read ended", map[string]any{
					"session": s.id,
					"error":   err.Error(),
				})
			}
			return
		}

		s.mu.Lock()
		ch, ok := s.pending[resp.ID]
		delete(s.pending, resp.ID)
		s.mu.Unlock()

		if ok {
			ch <- resp
		}
	}
}

// Close tears the session down. Pending calls fail with ErrSessionClosed.
// Idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.pending = make(map[string]chan response)
	s.mu.Unlock()

	close(s.done)
	err := s.conn.Close()
	if s.onClose != nil {
		s.onClose(s)
	}
	return err
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

var _ provider.Environment = (*Session)(nil)
