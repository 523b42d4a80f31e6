package service

import "math"

// descriptorMismatchDistance is the sentinel returned for absent or
// length-mismatched descriptors.  It exceeds any legitimate threshold, so
// malformed biometric input reads as a confident non-match, not an error.
const descriptorMismatchDistance = 100.0

// faceMatchThreshold is a property of the external descriptor space
// (128-dimension face embeddings), not a tunable business rule.
const faceMatchThreshold = 0.6

// DescriptorDistance returns the Euclidean distance between two descriptor
// vectors, or descriptorMismatchDistance when either is empty or their
// lengths differ.
func DescriptorDistance(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return descriptorMismatchDistance
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
