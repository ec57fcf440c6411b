// Package loop runs the game locally: an in-process server ticking one
// session and a terminal client rendering it.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/strafe/internal/combat"
	"github.com/tomz197/strafe/internal/draw"
	"github.com/tomz197/strafe/internal/loop/client"
	"github.com/tomz197/strafe/internal/loop/server"
	"golang.org/x/sync/errgroup"
)

// Options configures local play.
type Options struct {
	TickRate     int
	Combat       combat.Config
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// Run plays until the player quits or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	srv := server.NewServer(server.Options{
		TickRate:    opts.TickRate,
		MaxSessions: 1,
		Logger:      opts.Logger,
		NewSim: func(logger *log.Logger) *combat.Sim {
			return combat.NewLocalSim(opts.Combat, logger)
		},
	})

	c, err := client.NewClient(srv, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		Logger:       opts.Logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error {
		defer cancel()
		return c.Run(ctx)
	})
	return g.Wait()
}
