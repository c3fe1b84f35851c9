// Package astro holds the degree-based trigonometry, hour arithmetic and
// solar-position series used to place prayer times on a day.
package astro

import "math"

// FixDegrees normalizes an angle into [0, 360).
func FixDegrees(a float64) float64 {
	return fix(a, 360)
}

// DegToRad converts degrees to radians.
func DegToRad(d float64) float64 {
	return d * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(r float64) float64 {
	return r * 180 / math.Pi
}

// Sin returns the sine of an angle given in degrees.
func Sin(d float64) float64 { return math.Sin(DegToRad(d)) }

// Cos returns the cosine of an angle given in degrees.
func Cos(d float64) float64 { return math.Cos(DegToRad(d)) }

// Tan returns the tangent of an angle given in degrees.
func Tan(d float64) float64 { return math.Tan(DegToRad(d)) }

// Asin returns the arcsine in degrees. Inputs outside [-1, 1] yield NaN.
func Asin(x float64) float64 { return RadToDeg(math.Asin(x)) }

// Acos returns the arccosine in degrees. Inputs outside [-1, 1] yield NaN.
func Acos(x float64) float64 { return RadToDeg(math.Acos(x)) }

// Atan2 returns the angle of the point (x, y) in degrees.
func Atan2(y, x float64) float64 { return RadToDeg(math.Atan2(y, x)) }

// Acot returns the arccotangent of x in degrees.
func Acot(x float64) float64 { return RadToDeg(math.Atan(1 / x)) }

// fix reduces a into [0, b) using floor division, so negative inputs wrap
// forward (fix(-10, 24) == 14).
func fix(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}
