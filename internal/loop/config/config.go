// Package config holds the tunables of the terminal front-end.
package config

import "time"

// Render area limits. Larger terminals are centred with a border.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Radar
const (
	RadarRange = 12.0 // Meters from the player to the nearest edge
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server
const (
	DefaultTickRate = 60
	InputBuffer     = 256 // Pending client inputs before drops
	EventBuffer     = 16  // Pending events per session
)
