package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/strafe/internal/config"
	"github.com/tomz197/strafe/internal/loop"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "strafe: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the game; logs only go to STRAFE_LOG_FILE.
	logger, closer, err := cfg.Logger(io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	user := os.Getenv("USER")
	logger.Info("starting local game", "user", user, "tick_rate", cfg.TickRate)

	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		TickRate: cfg.TickRate,
		Combat:   cfg.Combat(),
		Logger:   logger,
		Username: user,
	})
}
