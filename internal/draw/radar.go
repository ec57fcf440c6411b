package draw

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/combat"
)

// Radar projects the arena onto a canvas from above, centred on the player
// with the player's heading pointing up.
type Radar struct {
	Range float64 // Meters from the centre to the nearest canvas edge

	// Bounds of the static ground, drawn as an outline.
	GroundCenter mgl64.Vec3
	GroundHalf   mgl64.Vec3
}

// project maps a world position to canvas pixels.
func (r Radar) project(c *Canvas, snap *combat.Snapshot, p mgl64.Vec3) (float64, float64) {
	w, h := c.Size()
	scale := float64(min(w, h)) / 2 / r.Range

	rel := p.Sub(snap.PlayerPosition)
	sin, cos := math.Sincos(snap.PlayerYaw)
	side := rel.X()*cos - rel.Z()*sin     // Along the player's right
	ahead := -rel.X()*sin - rel.Z()*cos   // Along the player's forward

	return float64(w)/2 + side*scale, float64(h)/2 - ahead*scale
}

// Draw renders snap onto c.
func (r Radar) Draw(c *Canvas, snap *combat.Snapshot) {
	if r.Range <= 0 {
		return
	}
	w, h := c.Size()
	scale := float64(min(w, h)) / 2 / r.Range

	g, half := r.GroundCenter, r.GroundHalf
	corners := [4]mgl64.Vec3{
		{g.X() - half.X(), 0, g.Z() - half.Z()},
		{g.X() + half.X(), 0, g.Z() - half.Z()},
		{g.X() + half.X(), 0, g.Z() + half.Z()},
		{g.X() - half.X(), 0, g.Z() + half.Z()},
	}
	var xs, ys [4]float64
	for i, p := range corners {
		xs[i], ys[i] = r.project(c, snap, p)
	}
	c.Polygon(xs[:], ys[:])

	for _, e := range snap.Enemies {
		x, y := r.project(c, snap, e.Position)
		c.Ring(x, y, 0.6*scale)
	}

	for _, p := range snap.Projectiles {
		x, y := r.project(c, snap, p.Position)
		c.Dot(x, y)
		if p.Faction == combat.FactionEnemy {
			c.Dot(x+1, y)
		}
	}

	if snap.PlayerAlive {
		cx, cy := float64(w)/2, float64(h)/2
		c.Polygon(
			[]float64{cx, cx + 2, cx - 2},
			[]float64{cy - 3, cy + 2, cy + 2},
		)
	}
}
