package draw

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/strafe/internal/combat"
)

// Bar renders a horizontal gauge of width cells filled to frac.
func Bar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac = math.Max(0, math.Min(1, frac))
	full := int(math.Round(frac * float64(width)))
	return strings.Repeat(string(BlockFull), full) + strings.Repeat(string(BlockLight), width-full)
}

// Crosshair returns the reticle: a hit marker while it is showing.
func Crosshair(alpha float64) string {
	if alpha > 0 {
		return "X"
	}
	return "+"
}

// HUD writes the text overlay for snap over a cols x rows area.
func HUD(cw *ChunkWriter, snap *combat.Snapshot, cols, rows int) {
	cw.WriteAt(2, 1, fmt.Sprintf("tick %-8d projectiles %-3d entities %-3d", snap.Tick, len(snap.Projectiles), snap.Entities))

	for i, e := range snap.Enemies {
		if i >= rows-4 {
			break
		}
		cw.WriteAt(2, 2+i, fmt.Sprintf("enemy %s %3.0f/%-3.0f", Bar(e.Health.Fraction(), 10), e.Health.Current, e.Health.Max))
	}
	if len(snap.Enemies) == 0 {
		cw.WriteAt(2, 2, "all targets down  [r] reset")
	}

	status := fmt.Sprintf("aim %s  fov %3.0f°  pitch %+5.1f°  recoil %+.3f",
		Bar(snap.Aim, 5), degrees(snap.FOV), degrees(snap.Pitch), snap.Recoil.Vertical)
	cw.WriteAt(2, rows-1, status)
	cw.WriteAt(2, rows-2, fmt.Sprintf("fire %s  shots %-4d  enemy fire in %.1fs",
		Bar(snap.FireCharge, 5), snap.Shots, snap.EnemyFireIn.Seconds()))
	cw.WriteAt(2, rows, "wasd move  space fire  e aim  arrows/ijkl look  r reset  q quit")

	cw.WriteAt(max(1, cols/2), max(1, rows/2), Crosshair(snap.HitMarkerAlpha))
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
