package service_test

import (
	"math"
	"testing"

	"github.com/proximark/server/internal/attendance/service"
)

func descriptor(dim int, fill float64) []float64 {
	d := make([]float64, dim)
	for i := range d {
		d[i] = fill
	}
	return d
}

func TestDescriptorDistance_Identical_Zero(t *testing.T) {
	d := descriptor(128, 0.25)
	if got := service.DescriptorDistance(d, d); got != 0 {
		t.Errorf("expected 0 for identical vectors, got %v", got)
	}
}

func TestDescriptorDistance_MalformedInput_Sentinel(t *testing.T) {
	d := descriptor(128, 0.25)
	cases := [][2][]float64{
		{nil, d},
		{d, nil},
		{{}, d},
		{d, descriptor(64, 0.25)},
	}
	for i, c := range cases {
		if got := service.DescriptorDistance(c[0], c[1]); got != 100.0 {
			t.Errorf("case %d: expected sentinel 100.0, got %v", i, got)
		}
	}
}

func TestDescriptorDistance_Symmetric(t *testing.T) {
	a := descriptor(128, 0.1)
	b := descriptor(128, 0.3)
	if ab, ba := service.DescriptorDistance(a, b), service.DescriptorDistance(b, a); ab != ba {
		t.Errorf("expected symmetric distance, got %v vs %v", ab, ba)
	}
}

func TestDescriptorDistance_KnownValue(t *testing.T) {
	a := descriptor(128, 0)
	b := descriptor(128, 0)
	b[0] = 0.8

	if got := service.DescriptorDistance(a, b); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("expected 0.8, got %v", got)
	}
}
