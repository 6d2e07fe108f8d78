// Package wallet tracks the connection between this service and the user's
// wallet: which account is connected, on which network, and its last known balance.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Network is the user's network preference
type Network string

const (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

// ErrInvalidNetwork is returned for networks other than testnet and mainnet
var ErrInvalidNetwork = errors.New("network must be testnet or mainnet")

// ErrConnectInProgress is returned when a connect flow is already running
var ErrConnectInProgress = errors.New("wallet connection already in progress")

// ErrPersist wraps a failed save of the durable subset. The in-memory
// transition has already happened when it is returned.
var ErrPersist = errors.New("wallet session not persisted")

// ParseNetwork validates a network name
func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case Testnet, Mainnet:
		return Network(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidNetwork, s)
}

// Status is the connection state
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting" // transient, never persisted
	StatusConnected    Status = "connected"
)

// State is a point-in-time copy of the session
type State struct {
	Status    Status
	Address   string
	PublicKey string
	Network   Network
	Balance   float64
	// Stale marks an identity restored from storage that no live adapter has confirmed.
	Stale bool
}

// IsConnected reports whether an identity is attached
func (s State) IsConnected() bool {
	return s.Status == StatusConnected
}

// Persisted is the durable subset of the session. Balance is deliberately absent.
type Persisted struct {
	IsConnected bool    `json:"isConnected"`
	Address     string  `json:"address,omitempty"`
	PublicKey   string  `json:"publicKey,omitempty"`
	Network     Network `json:"network"`
}

// Persister saves the durable subset after every durable change
type Persister interface {
	SaveSession(Persisted) error
}

// Loader reads a previously saved session; ok is false when nothing was saved
type Loader interface {
	LoadSession() (p Persisted, ok bool, err error)
}

// Session is the process-wide wallet connection, shared by injection.
// Every transition is atomic under mu.
type Session struct {
	mu         sync.RWMutex
	state      State
	prevStatus Status

	persister Persister
	observers []func(State)
	logger    *zap.Logger
}

// Option configures a Session
type Option func(*Session)

// WithPersister saves the durable subset through p
func WithPersister(p Persister) Option {
	return func(s *Session) { s.persister = p }
}

// WithObserver registers fn to receive a copy of the state after each change
func WithObserver(fn func(State)) Option {
	return func(s *Session) { s.observers = append(s.observers, fn) }
}

// WithLogger sets the session logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a disconnected session on the given network
func NewSession(network Network, opts ...Option) *Session {
	if network == "" {
		network = Testnet
	}
	s := &Session{
		state:  State{Status: StatusDisconnected, Network: network},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BeginConnect moves the session into the transient Connecting state
func (s *Session) BeginConnect() error {
	s.mu.Lock()
	if s.state.Status == StatusConnecting {
		s.mu.Unlock()
		return ErrConnectInProgress
	}
	s.prevStatus = s.state.Status
	s.state.Status = StatusConnecting
	state := s.state
	s.mu.Unlock()

	s.notify(state)
	return nil
}

// FailConnect abandons a connect flow and returns to the status held before it began
func (s *Session) FailConnect() {
	s.mu.Lock()
	if s.state.Status != StatusConnecting {
		s.mu.Unlock()
		return
	}
	s.state.Status = s.prevStatus
	if s.state.Status == "" {
		s.state.Status = StatusDisconnected
	}
	state := s.state
	s.mu.Unlock()

	s.notify(state)
}

// Connect attaches an identity. Values are stored verbatim; validating them is
// the caller's job. Calling Connect while connected overwrites the identity.
// The session is connected even when the returned error wraps ErrPersist.
func (s *Session) Connect(address, publicKey string) error {
	return s.update(true, func(st *State) {
		st.Status = StatusConnected
		st.Address = address
		st.PublicKey = publicKey
		st.Stale = false
	})
}

// Disconnect clears identity and balance. The network preference survives.
// As with Connect, an ErrPersist error leaves the session disconnected.
func (s *Session) Disconnect() error {
	return s.update(true, func(st *State) {
		st.Status = StatusDisconnected
		st.Address = ""
		st.PublicKey = ""
		st.Balance = 0
		st.Stale = false
	})
}

// SetBalance updates the volatile balance projection. It is never persisted.
func (s *Session) SetBalance(balance float64) {
	_ = s.update(false, func(st *State) {
		st.Balance = balance
	})
}

// SetNetwork updates the network preference. Dependent data such as the
// balance is not refreshed here; callers do that explicitly.
func (s *Session) SetNetwork(network Network) error {
	if _, err := ParseNetwork(string(network)); err != nil {
		return err
	}
	return s.update(true, func(st *State) {
		st.Network = network
	})
}

// Restore loads the durable subset saved by a previous process and, when a
// live adapter is given, reconciles the restored identity against it: the
// adapter's current address wins, and an adapter with no authorized account
// disconnects the session. Without an adapter the identity is kept but
// marked stale.
func (s *Session) Restore(ctx context.Context, loader Loader, adapter Adapter) error {
	p, ok, err := loader.LoadSession()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil
	}

	network, err := ParseNetwork(string(p.Network))
	if err != nil {
		s.logger.Warn("ignoring persisted network", zap.String("network", string(p.Network)))
		network = s.Snapshot().Network
	}

	s.mu.Lock()
	s.state = State{Status: StatusDisconnected, Network: network}
	if p.IsConnected {
		s.state.Status = StatusConnected
		s.state.Address = p.Address
		s.state.PublicKey = p.PublicKey
		s.state.Stale = true
	}
	restored := s.state
	s.mu.Unlock()

	if !restored.IsConnected() {
		return nil
	}
	if adapter == nil {
		s.logger.Info("restored wallet identity without live verification",
			zap.String("address", restored.Address))
		return nil
	}

	live, err := adapter.GetAddress(ctx)
	if err != nil || live == "" {
		s.logger.Info("persisted wallet no longer authorized, disconnecting",
			zap.String("address", restored.Address), zap.Error(err))
		return s.Disconnect()
	}
	if live != restored.Address {
		s.logger.Info("wallet account switched since last run",
			zap.String("persisted", restored.Address), zap.String("live", live))
	}
	return s.Connect(live, live)
}

func (s *Session) update(durable bool, fn func(*State)) error {
	s.mu.Lock()
	fn(&s.state)
	state := s.state

	var err error
	if durable && s.persister != nil {
		if err = s.persister.SaveSession(s.persistedLocked()); err != nil {
			s.logger.Error("failed to persist wallet session", zap.Error(err))
			err = fmt.Errorf("%w: %w", ErrPersist, err)
		}
	}
	s.mu.Unlock()

	s.notify(state)
	return err
}

func (s *Session) notify(state State) {
	for _, fn := range s.observers {
		fn(state)
	}
}

// persistedLocked must be called with mu held
func (s *Session) persistedLocked() Persisted {
	connected := s.state.Status == StatusConnected ||
		(s.state.Status == StatusConnecting && s.prevStatus == StatusConnected)
	return Persisted{
		IsConnected: connected,
		Address:     s.state.Address,
		PublicKey:   s.state.PublicKey,
		Network:     s.state.Network,
	}
}
