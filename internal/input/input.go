// Package input turns raw terminal bytes into per-frame control state.
package input

import (
	"bufio"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// keyHoldDuration is how long a key counts as held after its last byte.
// Terminals only report repeats, so holds are inferred from recency.
const keyHoldDuration = 120 * time.Millisecond

// LookStep is the pointer motion, in pixels, one look key press produces.
const LookStep = 24

// Input is the control state for one frame.
type Input struct {
	Quit  bool
	Reset bool

	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Fire    bool
	Aim     bool // Toggled, not held

	// Look is the pointer motion produced this frame, +X right and +Y down.
	Look mgl64.Vec2
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	forward time.Time
	back    time.Time
	left    time.Time
	right   time.Time
	fire    time.Time
}

// Stream delivers input bytes through a channel and keeps held and toggled
// key state between frames.
type Stream struct {
	ch     chan byte
	closed bool
	state  keyState
	aim    bool
}

// StartStream spawns a goroutine that forwards bytes from r until it errors.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool { return s.closed }

// Read drains pending bytes without blocking and returns this frame's input.
func (s *Stream) Read(now time.Time) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.parse(buf, now)
}

// parse applies buf to the stream state.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI arrow keys: ESC [ A-D
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if look, ok := arrow(buf[i+2]); ok {
				in.Look = in.Look.Add(look)
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'r', 'R':
			in.Reset = true
		case 'e', 'E':
			s.aim = !s.aim
		case 'w', 'W':
			s.state.forward = now
		case 's', 'S':
			s.state.back = now
		case 'a', 'A':
			s.state.left = now
		case 'd', 'D':
			s.state.right = now
		case ' ':
			s.state.fire = now
		case 'j', 'J':
			in.Look[0] -= LookStep
		case 'l', 'L':
			in.Look[0] += LookStep
		case 'i', 'I':
			in.Look[1] -= LookStep
		case 'k', 'K':
			in.Look[1] += LookStep
		}
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in.Forward = held(s.state.forward)
	in.Back = held(s.state.back)
	in.Left = held(s.state.left)
	in.Right = held(s.state.right)
	in.Fire = held(s.state.fire)
	in.Aim = s.aim
	return in
}

func arrow(code byte) (mgl64.Vec2, bool) {
	switch code {
	case 'A':
		return mgl64.Vec2{0, -LookStep}, true
	case 'B':
		return mgl64.Vec2{0, LookStep}, true
	case 'C':
		return mgl64.Vec2{LookStep, 0}, true
	case 'D':
		return mgl64.Vec2{-LookStep, 0}, true
	}
	return mgl64.Vec2{}, false
}
