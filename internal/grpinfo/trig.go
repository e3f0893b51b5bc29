package grpinfo

import "math"

// Angles run 0..63 clockwise from "up"; magnitudes are scaled by 1<<14
const (
	fullCircle = 64
	quadrant   = fullCircle >> 2
	sinShift   = 14

	facingShift = 2
	numFacings  = fullCircle >> facingShift
)

var sineTable = func() [fullCircle]int32 {
	var t [fullCircle]int32
	for a := range t {
		t[a] = int32(math.Round(-math.Cos(float64(a)*2*math.Pi/fullCircle) * (1 << sinShift)))
	}
	return t
}()

func sine(angle int, magnitude int32) int32 {
	return sineTable[angle&(fullCircle-1)] * magnitude >> sinShift
}

func cosine(angle int, magnitude int32) int32 {
	return sine(angle+quadrant, magnitude)
}

func facingToAngle(facing int) int {
	return facing << facingShift
}

func normalizeFacing(facing uint8) uint8 {
	return facing & (numFacings - 1)
}
