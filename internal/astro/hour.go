package astro

// FixHour normalizes an hour value into [0, 24).
func FixHour(h float64) float64 {
	return fix(h, 24)
}

// Duration returns the forward distance in hours from start to end on a
// 24-hour circle.
func Duration(end, start float64) float64 {
	return FixHour(end - start)
}
