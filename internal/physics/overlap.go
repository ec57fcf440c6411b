package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// DistanceSquared returns the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec3) float64 {
	return a.Sub(b).LenSqr()
}

// SpheresOverlap checks if two spheres overlap.
func SpheresOverlap(a mgl64.Vec3, ra float64, b mgl64.Vec3, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}

// Overlaps reports whether shape sa at pa intersects shape sb at pb.
// Rotations are ignored: capsules stay Y-aligned and cuboids axis-aligned.
func Overlaps(sa Shape, pa mgl64.Vec3, sb Shape, pb mgl64.Vec3) bool {
	switch {
	case sa.Kind == ShapeCuboid && sb.Kind == ShapeCuboid:
		return boxesOverlap(pa, sa.HalfExtents, pb, sb.HalfExtents)
	case sa.Kind == ShapeCuboid:
		return segmentBoxOverlap(pb, sb.HalfHeight, sb.Radius, pa, sa.HalfExtents)
	case sb.Kind == ShapeCuboid:
		return segmentBoxOverlap(pa, sa.HalfHeight, sa.Radius, pb, sb.HalfExtents)
	default:
		return segmentsOverlap(pa, sa.HalfHeight, sa.Radius, pb, sb.HalfHeight, sb.Radius)
	}
}

// segmentsOverlap tests two Y-aligned swept spheres. A ball is a segment of
// zero half height.
func segmentsOverlap(pa mgl64.Vec3, ha, ra float64, pb mgl64.Vec3, hb, rb float64) bool {
	dx := pa.X() - pb.X()
	dz := pa.Z() - pb.Z()
	gap := intervalGap(pa.Y()-ha, pa.Y()+ha, pb.Y()-hb, pb.Y()+hb)
	minDist := ra + rb
	return dx*dx+dz*dz+gap*gap < minDist*minDist
}

// segmentBoxOverlap tests a Y-aligned swept sphere against an axis-aligned box.
func segmentBoxOverlap(p mgl64.Vec3, h, r float64, c, half mgl64.Vec3) bool {
	// The closest segment point to the box has y clamped toward the box centre.
	y := mgl64.Clamp(c.Y(), p.Y()-h, p.Y()+h)
	q := mgl64.Vec3{p.X(), y, p.Z()}

	closest := mgl64.Vec3{
		mgl64.Clamp(q.X(), c.X()-half.X(), c.X()+half.X()),
		mgl64.Clamp(q.Y(), c.Y()-half.Y(), c.Y()+half.Y()),
		mgl64.Clamp(q.Z(), c.Z()-half.Z(), c.Z()+half.Z()),
	}
	return DistanceSquared(q, closest) < r*r
}

func boxesOverlap(pa, ha, pb, hb mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(pa[i]-pb[i]) >= ha[i]+hb[i] {
			return false
		}
	}
	return true
}

// intervalGap returns the distance between [lo1,hi1] and [lo2,hi2], 0 if they intersect.
func intervalGap(lo1, hi1, lo2, hi2 float64) float64 {
	return math.Max(0, math.Max(lo1, lo2)-math.Min(hi1, hi2))
}
