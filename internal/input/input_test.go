package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseHeldKeysExpire(t *testing.T) {
	s := &Stream{}
	now := time.Now()

	in := s.parse([]byte("w "), now)
	if !in.Forward || !in.Fire {
		t.Fatalf("keys should be held: %+v", in)
	}

	in = s.parse(nil, now.Add(keyHoldDuration/2))
	if !in.Forward || !in.Fire {
		t.Fatal("keys should stay held between repeats")
	}

	in = s.parse(nil, now.Add(keyHoldDuration))
	if in.Forward || in.Fire {
		t.Fatal("keys should release after the hold window")
	}
}

func TestParseLookAndArrows(t *testing.T) {
	s := &Stream{}
	in := s.parse([]byte("l\x1b[A\x1b[Ck"), time.Now())

	want := mgl64.Vec2{2 * LookStep, 0}
	if in.Look != want {
		t.Errorf("look=%v, want %v", in.Look, want)
	}
}

func TestParseAimToggles(t *testing.T) {
	s := &Stream{}
	now := time.Now()

	if !s.parse([]byte("e"), now).Aim {
		t.Fatal("first press should aim")
	}
	if !s.parse(nil, now.Add(time.Second)).Aim {
		t.Fatal("aim should persist without presses")
	}
	if s.parse([]byte("e"), now).Aim {
		t.Fatal("second press should release aim")
	}
}

func TestStreamCloses(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))

	deadline := time.Now().Add(time.Second)
	var quit bool
	for !s.Closed() && time.Now().Before(deadline) {
		quit = quit || s.Read(time.Now()).Quit
		time.Sleep(time.Millisecond)
	}
	if !quit || !s.Closed() {
		t.Errorf("quit=%v closed=%v", quit, s.Closed())
	}
}
