package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/strafe/internal/combat"
	"github.com/tomz197/strafe/internal/config"
	"github.com/tomz197/strafe/internal/draw"
	"github.com/tomz197/strafe/internal/loop/client"
	"github.com/tomz197/strafe/internal/loop/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal("ssh server failed", "err", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, closer, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	combatCfg := cfg.Combat()
	gameServer := server.NewServer(server.Options{
		TickRate:    cfg.TickRate,
		MaxSessions: cfg.MaxSessions,
		Logger:      logger,
		NewSim: func(l *log.Logger) *combat.Sim {
			return combat.NewLocalSim(combatCfg, l)
		},
	})

	addr := net.JoinHostPort(cfg.SSHHost, cfg.SSHPort)
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			gameMiddleware(gameServer, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Input latency matters more than throughput.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The game server outlives the signal so sessions can be told to leave.
	gameCtx, stopGame := context.WithCancel(context.Background())
	defer stopGame()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return gameServer.Run(gameCtx) })
	g.Go(func() error {
		logger.Info("listening", "addr", addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "sessions", gameServer.Len())

		gameServer.Shutdown(cfg.ShutdownGrace)
		stopGame()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// gameMiddleware runs a client for every PTY session.
func gameMiddleware(gs *server.Server, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "PTY required. Connect with: ssh -t user@host")
				return
			}
			logger.Info("session started", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			size := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					size.update(win.Width, win.Height)
				}
			}()

			c, err := client.NewClient(gs, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: size.get,
				Username:     sess.User(),
				Logger:       logger,
			})
			if err != nil {
				fmt.Fprintf(sess, "cannot join: %v\n", err)
				logger.Warn("session rejected", "user", sess.User(), "err", err)
				return
			}
			if err := c.Run(sess.Context()); err != nil {
				logger.Error("session failed", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker follows SSH window change events.
type sizeTracker struct {
	mu            sync.RWMutex
	width, height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

func (s *sizeTracker) get() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).get
