package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/combat"
	"github.com/tomz197/strafe/internal/draw"
	"github.com/tomz197/strafe/internal/input"
	"github.com/tomz197/strafe/internal/loop/config"
	"github.com/tomz197/strafe/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	session      *server.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	radar        draw.Radar
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	in input.Input
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger
}

// NewClient registers a session on gs and prepares the terminal renderer.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	sess, err := gs.Register(opts.Username)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", opts.Username, err)
	}

	return &Client{
		server:      gs,
		session:     sess,
		state:       NewClientState(),
		canvas:      draw.NewCanvas(0, 0),
		chunkWriter: draw.NewChunkWriter(w),
		radar: draw.Radar{
			Range:        config.RadarRange,
			GroundCenter: combat.GroundPosition,
			GroundHalf:   combat.GroundHalfExtents,
		},
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: opts.TermSizeFunc,
		logger:       opts.Logger.With("session", sess.ID.String()[:8]),
	}, nil
}

// Run drives the client until the player quits, the input ends, the server
// drops the session, or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	defer c.server.Unregister(c.session.ID)

	lastTime := time.Now()
	for c.state.Running {
		if ctx.Err() != nil {
			break
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(frameStart)
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			if c.in.Fire {
				c.state.GameState = GameStatePlaying
			}
		case GameStatePlaying:
			c.state.tickBanner()
		case GameStateShutdown:
			c.state.shutdownTimer -= c.state.delta.Seconds()
			if c.state.shutdownTimer <= 0 {
				c.state.Running = false
			}
		}

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	c.logger.Info("client finished", "kills", c.state.Kills)
	return nil
}

// processInput reads this frame's keys and forwards them while playing.
func (c *Client) processInput(now time.Time) {
	c.in = c.inputStream.Read(now)

	if c.inputStream.Closed() || c.in.Quit {
		c.state.Running = false
		return
	}

	active := c.in.Fire || c.in.Forward || c.in.Back || c.in.Left || c.in.Right ||
		c.in.Reset || c.in.Look != (mgl64.Vec2{})
	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case active:
		c.lastInput = now
		c.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if c.state.GameState == GameStatePlaying {
		c.server.SendInput(c.session.ID, toClientInput(c.in))
	}
}

// toClientInput maps terminal controls onto combat input.
func toClientInput(in input.Input) server.ClientInput {
	ci := server.ClientInput{
		Input: combat.Input{
			Forward: in.Forward,
			Back:    in.Back,
			Left:    in.Left,
			Right:   in.Right,
			Fire:    in.Fire,
			Aim:     in.Aim,
		},
		Reset: in.Reset,
	}
	if in.Look != (mgl64.Vec2{}) {
		ci.Input.Motion = []mgl64.Vec2{in.Look}
	}
	return ci
}

// processServerEvents drains pending server events.
func (c *Client) processServerEvents() {
	for {
		select {
		case ev, ok := <-c.session.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch ev.Type {
			case server.EventEnemyKilled:
				c.state.Kills += ev.Report.Kills
				c.state.Flash("target down", 2)
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes, clamping to the max render area.
func (c *Client) updateScreen() {
	w, h, err := c.termSizeFunc()
	if err != nil {
		return
	}
	cols, rows, offCol, offRow := clampTermSize(w, h)
	if oc, or := c.canvas.Cells(); oc != cols || or != rows {
		c.state.forceClear = true
	}
	c.canvas.Resize(cols, rows)
	c.chunkWriter.SetOffset(offCol, offRow)
}

// clampTermSize limits the render area and centres it in the terminal.
func clampTermSize(w, h int) (cols, rows, offCol, offRow int) {
	cols, rows = min(w, config.MaxTermWidth), min(h, config.MaxTermHeight)
	return cols, rows, (w - cols) / 2, (h - rows) / 2
}
