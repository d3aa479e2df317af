package scratch

import "math"

// sdfAntialiasWidth controls the smoothstep transition width in pixels.
// A value of 0.7 produces smooth anti-aliasing at standard DPI.
const sdfAntialiasWidth = 0.7

// circleCoverage computes anti-aliased coverage for a filled circle.
// px, py is the pixel centre.
func circleCoverage(px, py, cx, cy, radius float64) float64 {
	return smoothstepCoverage(math.Hypot(px-cx, py-cy) - radius)
}

// ringCoverage computes anti-aliased coverage for a stroked circle whose
// stroke is centred on radius.
func ringCoverage(px, py, cx, cy, radius, halfStrokeWidth float64) float64 {
	dist := math.Hypot(px-cx, py-cy)
	return smoothstepCoverage(math.Abs(dist-radius) - halfStrokeWidth)
}

// rrectCoverage computes anti-aliased coverage for a filled rounded rectangle.
func rrectCoverage(px, py, cx, cy, halfW, halfH, cornerRadius float64) float64 {
	return smoothstepCoverage(sdfRRect(px, py, cx, cy, halfW, halfH, cornerRadius))
}

// diamondCoverage computes anti-aliased coverage for a square rotated by 45
// degrees whose vertices lie radius away from the centre.
func diamondCoverage(px, py, cx, cy, radius float64) float64 {
	d := (math.Abs(px-cx) + math.Abs(py-cy) - radius) / math.Sqrt2
	return smoothstepCoverage(d)
}

// sdfRRect computes the signed distance from a point to a rounded rectangle.
// Negative values are inside, positive values are outside.
func sdfRRect(px, py, cx, cy, halfW, halfH, cornerRadius float64) float64 {
	dx := math.Abs(px-cx) - halfW + cornerRadius
	dy := math.Abs(py-cy) - halfH + cornerRadius

	// Outside the corner region: max(dx, dy) gives the distance to the edge.
	// Inside the corner region: the Euclidean distance to the corner circle.
	outside := math.Sqrt(math.Max(dx, 0)*math.Max(dx, 0) + math.Max(dy, 0)*math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)

	return outside + inside - cornerRadius
}

// smoothstepCoverage converts a signed distance to an anti-aliased coverage
// value using a Hermite smoothstep function.
//
// sdf < -afwidth => 1.0 (fully inside)
// sdf > +afwidth => 0.0 (fully outside)
// Otherwise       => smooth transition
func smoothstepCoverage(sdf float64) float64 {
	if sdf >= sdfAntialiasWidth {
		return 0
	}
	if sdf <= -sdfAntialiasWidth {
		return 1
	}
	t := (sdf + sdfAntialiasWidth) / (2 * sdfAntialiasWidth)
	// Hermite smoothstep: 3t^2 - 2t^3
	return 1 - (t * t * (3 - 2*t))
}
