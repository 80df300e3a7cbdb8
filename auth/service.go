package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/arbfarm/walletlink/logger"
	"github.com/arbfarm/walletlink/types"
	"github.com/arbfarm/walletlink/utils"
)

var (
	ErrUnknownChallenge = errors.New("unknown or already used challenge")
	ErrExpiredChallenge = errors.New("challenge expired")
	ErrChallengeMismatch = errors.New("challenge was issued for a different address or chain")
	ErrUnknownSession   = errors.New("unknown session")
	ErrExpiredSession   = errors.New("session expired")
)

const (
	defaultChallengeTTL = 5 * time.Minute
	defaultSessionTTL   = 24 * time.Hour
)

// Challenge is a single-use message the wallet must sign to log in.
type Challenge struct {
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginRequest carries the signed challenge back from the view layer.
type LoginRequest struct {
	Address   string          `json:"address" validate:"required"`
	Chain     types.ChainType `json:"chain" validate:"required,oneof=evm solana"`
	Nonce     string          `json:"nonce" validate:"required,uuid4"`
	Signature string          `json:"signature" validate:"required"`
}

// Session is an issued dashboard session.
type Session struct {
	Token     string          `json:"token"`
	Address   string          `json:"address"`
	Chain     types.ChainType `json:"chain"`
	IssuedAt  time.Time       `json:"issuedAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type storedChallenge struct {
	address   string
	chain     types.ChainType
	message   string
	expiresAt time.Time
}

// Service issues challenges and trades valid signatures for sessions. All
// state is in memory; session durability is the caller's concern.
type Service struct {
	mu         sync.Mutex
	challenges map[string]storedChallenge
	sessions   map[string]Session

	challengeTTL time.Duration
	sessionTTL   time.Duration
	now          func() time.Time

	validate *validator.Validate
	log      logger.Logger
}

func NewService(challengeTTL, sessionTTL time.Duration, log logger.Logger) *Service {
	if challengeTTL <= 0 {
		challengeTTL = defaultChallengeTTL
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &Service{
		challenges:   make(map[string]storedChallenge),
		sessions:     make(map[string]Session),
		challengeTTL: challengeTTL,
		sessionTTL:   sessionTTL,
		now:          time.Now,
		validate:     validator.New(),
		log:          log,
	}
}

// NewChallenge issues a login challenge for an address on a chain.
func (s *Service) NewChallenge(address string, chain types.ChainType) (*Challenge, error) {
	if err := utils.ValidateAddressForChain(address, chain); err != nil {
		return nil, err
	}

	now := s.now()
	nonce := uuid.NewString()
	message := fmt.Sprintf(
		"ArbFarm Dashboard wants you to sign in.\n\nAddress: %s\nChain: %s\nNonce: %s\nIssued At: %s",
		address, chain, nonce, now.UTC().Format(time.RFC3339),
	)
	expires := now.Add(s.challengeTTL)

	s.mu.Lock()
	s.challenges[nonce] = storedChallenge{
		address:   address,
		chain:     chain,
		message:   message,
		expiresAt: expires,
	}
	s.mu.Unlock()

	return &Challenge{Nonce: nonce, Message: message, ExpiresAt: expires}, nil
}

// Login consumes a challenge. The nonce is single-use: it is removed before
// signature verification so a failed attempt also burns it.
func (s *Service) Login(req *LoginRequest) (*Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	s.mu.Lock()
	ch, ok := s.challenges[req.Nonce]
	delete(s.challenges, req.Nonce)
	s.mu.Unlock()

	if !ok {
		return nil, ErrUnknownChallenge
	}
	if s.now().After(ch.expiresAt) {
		return nil, ErrExpiredChallenge
	}
	if ch.address != req.Address || ch.chain != req.Chain {
		return nil, ErrChallengeMismatch
	}

	if err := VerifySignature(req.Chain, req.Address, ch.message, req.Signature); err != nil {
		s.log.Warn("login signature rejected", map[string]any{
			"address": req.Address,
			"chain":   req.Chain.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	now := s.now()
	session := Session{
		Token:     uuid.NewString(),
		Address:   req.Address,
		Chain:     req.Chain,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	s.log.Info("session issued", map[string]any{
		"address": session.Address,
		"chain":   session.Chain.String(),
	})
	return &session, nil
}

// Validate resolves a session token. Expired sessions are removed.
func (s *Service) Validate(token string) (*Session, error) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	if ok && s.now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrExpiredSession
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrUnknownSession
	}
	return &session, nil
}

// Revoke drops a session. Revoking an unknown token is a no-op.
func (s *Service) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Prune drops expired challenges and sessions.
func (s *Service) Prune() {
	now := s.now()
	s.mu.Lock()
	for nonce, ch := range s.challenges {
		if now.After(ch.expiresAt) {
			delete(s.challenges, nonce)
		}
	}
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}
