package client

import "time"

// GameState is the client's screen.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection UI state.
type ClientState struct {
	GameState     GameState
	prevGameState GameState
	Running       bool
	Kills         int

	banner      string  // Transient message under the HUD
	bannerTimer float64 // Seconds left to show banner

	delta         time.Duration
	shutdownTimer float64
	isInactive    bool
	wasInactive   bool
	forceClear    bool
}

// NewClientState creates the state for a fresh connection.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:  GameStateStart,
		Running:    true,
		forceClear: true,
	}
}

// Flash shows msg for secs seconds.
func (s *ClientState) Flash(msg string, secs float64) {
	s.banner = msg
	s.bannerTimer = secs
}

func (s *ClientState) tickBanner() {
	if s.bannerTimer <= 0 {
		return
	}
	s.bannerTimer -= s.delta.Seconds()
	if s.bannerTimer <= 0 {
		s.banner = ""
		s.forceClear = true
	}
}
