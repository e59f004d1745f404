package vmath

// Overlap reports whether the 1-D interval centered at x1 with width w1 overlaps the one centered
// at x2 with width w2, both widths scaled by percent (0 means full width)
func Overlap(x1, w1, x2, w2, percent float64) bool {
	if percent == 0 {
		percent = 1
	}
	half := percent / 2
	min1 := x1 - w1*half
	max1 := x1 + w1*half
	min2 := x2 - w2*half
	max2 := x2 + w2*half
	return !(max1 < min2 || min1 > max2)
}
