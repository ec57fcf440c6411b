package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/input"
	"github.com/tomz197/strafe/internal/loop/config"
	"github.com/tomz197/strafe/internal/loop/server"
)

func TestClampTermSize(t *testing.T) {
	cols, rows, offCol, offRow := clampTermSize(config.MaxTermWidth+20, 10)
	if cols != config.MaxTermWidth || rows != 10 || offCol != 10 || offRow != 0 {
		t.Errorf("got %d %d %d %d", cols, rows, offCol, offRow)
	}
}

func TestToClientInput(t *testing.T) {
	ci := toClientInput(input.Input{Fire: true, Aim: true, Reset: true})
	if !ci.Input.Fire || !ci.Input.Aim || !ci.Reset || ci.Input.Motion != nil {
		t.Errorf("got %+v", ci)
	}

	ci = toClientInput(input.Input{Look: mgl64.Vec2{24, 0}})
	if len(ci.Input.Motion) != 1 || ci.Input.Motion[0] != (mgl64.Vec2{24, 0}) {
		t.Errorf("look should become pointer motion, got %+v", ci.Input.Motion)
	}
}

func TestRunStartsAndQuits(t *testing.T) {
	logger := log.New(io.Discard)
	srv := server.NewServer(server.Options{MaxSessions: 1, Logger: logger})

	pr, pw := io.Pipe()
	var out bytes.Buffer
	c, err := NewClient(srv, bufio.NewReader(pr), &out, ClientOptions{
		Username:     "tester",
		Logger:       logger,
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
	})
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(2 * config.ClientTargetFrameTime)
		pw.Write([]byte(" "))
		time.Sleep(4 * config.ClientTargetFrameTime)
		pw.Write([]byte("q"))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	s := out.String()
	if !strings.Contains(s, "S T R A F E") {
		t.Error("title screen not drawn")
	}
	if !strings.Contains(s, "wasd move") {
		t.Error("playing HUD not drawn")
	}

	srv.Tick(0)
	if srv.Len() != 0 {
		t.Error("client should unregister on exit")
	}
}
