// Package server runs combat simulations for connected players on a fixed
// tick. Each session owns an independent sim; the server batches client
// input between ticks and publishes a snapshot per session after each step.
package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tomz197/strafe/internal/combat"
	"github.com/tomz197/strafe/internal/loop/config"
)

var (
	// ErrServerFull is returned by Register when every session slot is taken.
	ErrServerFull = errors.New("server full")
	// ErrServerClosed is returned by Register once Run has returned.
	ErrServerClosed = errors.New("server closed")
)

// GameServer is the interface clients use to talk to the server.
type GameServer interface {
	Register(username string) (*Session, error)
	Unregister(id uuid.UUID)
	SendInput(id uuid.UUID, in ClientInput)
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// SimFactory builds the simulation for a new session.
type SimFactory func(logger *log.Logger) *combat.Sim

// Options configures a Server.
type Options struct {
	TickRate    int
	MaxSessions int
	Logger      *log.Logger
	NewSim      SimFactory
}

// ClientInput is one frame of client input. Buttons replace the previous
// state; look motion and reset requests accumulate until the next tick.
type ClientInput struct {
	Input combat.Input
	Reset bool
}

type sessionInput struct {
	id uuid.UUID
	ClientInput
}

// EventType identifies a server-to-client event.
type EventType int

const (
	EventEnemyKilled EventType = iota
	EventServerShutdown
)

// Event is sent from the server to one session.
type Event struct {
	Type   EventType
	Report combat.TickReport
}

// Session is a client's handle on the server.
type Session struct {
	ID       uuid.UUID
	Username string
	EventsCh chan Event // Closed when the server drops the session

	sim      *combat.Sim
	pending  combat.Input
	reset    bool
	snapshot atomic.Pointer[combat.Snapshot]
}

// Snapshot returns the state published after the latest tick.
func (s *Session) Snapshot() *combat.Snapshot {
	return s.snapshot.Load()
}

func (s *Session) publish() {
	snap := s.sim.Snapshot()
	s.snapshot.Store(&snap)
}

// Server steps every registered session on a shared clock.
type Server struct {
	opts   Options
	logger *log.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	reserved int // Registered plus pending registrations

	inputCh      chan sessionInput
	registerCh   chan *Session
	unregisterCh chan uuid.UUID
	done         chan struct{} // Closed when Run returns
	stopOnce     sync.Once
}

// NewServer creates a server. Missing options take front-end defaults.
func NewServer(opts Options) *Server {
	if opts.TickRate <= 0 {
		opts.TickRate = config.DefaultTickRate
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.NewSim == nil {
		opts.NewSim = func(logger *log.Logger) *combat.Sim {
			return combat.NewLocalSim(combat.DefaultConfig(), logger)
		}
	}

	return &Server{
		opts:         opts,
		logger:       opts.Logger.WithPrefix("server"),
		sessions:     make(map[uuid.UUID]*Session),
		inputCh:      make(chan sessionInput, config.InputBuffer),
		registerCh:   make(chan *Session, 16),
		unregisterCh: make(chan uuid.UUID, 16),
		done:         make(chan struct{}),
	}
}

// TickInterval returns the fixed step the server runs at.
func (s *Server) TickInterval() time.Duration {
	return time.Second / time.Duration(s.opts.TickRate)
}

// Run ticks the server until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	step := s.TickInterval()
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	defer s.stopOnce.Do(func() { close(s.done) })

	s.logger.Info("running", "tick", step)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Tick(step)
		}
	}
}

// Tick applies pending registrations and input, then steps every session by dt.
func (s *Server) Tick(dt time.Duration) {
	s.processRegistrations()
	s.collectInputs()
	s.stepSessions(dt)
}

// Shutdown notifies every session and waits for them to leave or for timeout.
// Run must keep going until Shutdown returns so unregistrations are processed.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, sess := range s.sessions {
		select {
		case sess.EventsCh <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "sessions", s.Len())
			return
		case <-ticker.C:
			if s.Len() == 0 {
				return
			}
		}
	}
}

// Len returns the number of registered and pending sessions.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reserved
}

// Register creates a session with its own simulation.
func (s *Server) Register(username string) (*Session, error) {
	select {
	case <-s.done:
		return nil, ErrServerClosed
	default:
	}

	s.mu.Lock()
	if s.reserved >= s.opts.MaxSessions {
		s.mu.Unlock()
		return nil, ErrServerFull
	}
	s.reserved++
	s.mu.Unlock()

	id := uuid.New()
	sess := &Session{
		ID:       id,
		Username: username,
		EventsCh: make(chan Event, config.EventBuffer),
		sim:      s.opts.NewSim(s.opts.Logger.With("session", id.String()[:8])),
	}
	sess.publish()

	select {
	case s.registerCh <- sess:
	case <-s.done:
		s.mu.Lock()
		s.reserved--
		s.mu.Unlock()
		return nil, ErrServerClosed
	}
	s.logger.Info("session registered", "session", id, "user", username)
	return sess, nil
}

// Unregister removes a session. Its EventsCh is closed on the next tick.
// Once Run has returned there is no next tick and the call is a no-op.
func (s *Server) Unregister(id uuid.UUID) {
	select {
	case s.unregisterCh <- id:
	case <-s.done:
	}
}

// SendInput queues input for a session, dropping it if the queue is full.
func (s *Server) SendInput(id uuid.UUID, in ClientInput) {
	select {
	case s.inputCh <- sessionInput{id: id, ClientInput: in}:
	default:
	}
}

// processRegistrations adds new sessions before removing departed ones, so a
// session that leaves within one tick of joining is still closed.
func (s *Server) processRegistrations() {
	for registering := true; registering; {
		select {
		case sess := <-s.registerCh:
			s.mu.Lock()
			s.sessions[sess.ID] = sess
			s.mu.Unlock()
		default:
			registering = false
		}
	}

	for {
		select {
		case id := <-s.unregisterCh:
			s.mu.Lock()
			if sess, ok := s.sessions[id]; ok {
				close(sess.EventsCh)
				delete(s.sessions, id)
				s.reserved--
				s.logger.Info("session closed", "session", id, "user", sess.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case in := <-s.inputCh:
			sess, ok := s.sessions[in.id]
			if !ok {
				continue
			}
			motion := append(sess.pending.Motion, in.Input.Motion...)
			sess.pending = in.Input
			sess.pending.Motion = motion
			sess.reset = sess.reset || in.Reset
		default:
			return
		}
	}
}

func (s *Server) stepSessions(dt time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.reset {
			sess.sim.Reset()
			sess.reset = false
		}

		rep := sess.sim.Step(sess.pending, dt)
		sess.pending.Motion = nil
		sess.publish()

		if rep.Kills > 0 {
			select {
			case sess.EventsCh <- Event{Type: EventEnemyKilled, Report: rep}:
			default:
			}
		}
	}
}
