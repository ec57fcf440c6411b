package draw

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/combat"
)

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(1, 1, 8, 7)

	if !c.At(1, 1) || !c.At(8, 7) {
		t.Error("line should include both endpoints")
	}
	if c.At(8, 1) {
		t.Error("unexpected pixel off the line")
	}

	c.Set(-1, 100) // ignored
	c.Clear()
	if c.At(1, 1) {
		t.Error("clear should unset pixels")
	}
}

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0) // upper half of cell (1,1)
	c.Set(1, 0)
	c.Set(1, 1) // full cell (2,1)
	c.Set(3, 3) // lower half of cell (4,2)

	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	c.Render(cw)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	s := out.String()
	for _, want := range []string{"\033[1;1H▀", "\033[1;2H█", "\033[2;4H▄"} {
		if !strings.Contains(s, want) {
			t.Errorf("render missing %q in %q", want, s)
		}
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	cw.SetOffset(3, 2)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[3;4Hhi" {
		t.Errorf("got %q", got)
	}
	if cw.Len() != 0 {
		t.Error("flush should reset the buffer")
	}
}

func TestRadarPutsTargetAhead(t *testing.T) {
	c := NewCanvas(40, 20)
	r := Radar{Range: 10, GroundHalf: mgl64.Vec3{5, 0.5, 5}}
	snap := &combat.Snapshot{
		PlayerAlive:    true,
		PlayerPosition: mgl64.Vec3{0, 1.2, 5},
		Enemies:        []combat.EnemyView{{Position: mgl64.Vec3{0, 1.5, -5}}},
	}

	x, y := r.project(c, snap, snap.Enemies[0].Position)
	w, h := c.Size()
	if x != float64(w)/2 || y >= float64(h)/2 {
		t.Errorf("enemy straight ahead should project above centre, got (%v,%v)", x, y)
	}

	r.Draw(c, snap)
	if !c.At(int(x)+1, int(y)) {
		t.Error("enemy ring not drawn")
	}
	if !c.At(w/2, h/2-3) {
		t.Error("player marker not drawn")
	}
}

func TestBarAndCrosshair(t *testing.T) {
	if got := Bar(0.5, 4); got != "██░░" {
		t.Errorf("Bar=%q", got)
	}
	if got := Bar(2, 2); got != "██" {
		t.Errorf("Bar should clamp, got %q", got)
	}
	if Crosshair(1) != "X" || Crosshair(0) != "+" {
		t.Error("crosshair should show the hit marker")
	}
}

func TestHUDShowsEnemyHealth(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	snap := &combat.Snapshot{
		Enemies:        []combat.EnemyView{{Health: combat.Health{Current: 75, Max: 100}}},
		HitMarkerAlpha: 1,
		Shots:          7,
		EnemyFireIn:    1200 * time.Millisecond,
		Entities:       5,
	}
	HUD(cw, snap, 80, 24)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, " 75/100") {
		t.Errorf("hud missing health: %q", s)
	}
	for _, want := range []string{"shots 7", "enemy fire in 1.2s", "entities 5"} {
		if !strings.Contains(s, want) {
			t.Errorf("hud missing %q: %q", want, s)
		}
	}
	if !strings.Contains(s, "\033[12;40HX") {
		t.Errorf("hud missing hit marker: %q", s)
	}
}
