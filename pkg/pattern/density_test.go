package pattern

import (
	"math"
	"testing"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		cap        int
		wantFactor float64
		wantReduce bool
	}{
		{name: "under cap", requested: 500, cap: 10000, wantFactor: 1, wantReduce: false},
		{name: "at cap", requested: 10000, cap: 10000, wantFactor: 1, wantReduce: false},
		{name: "hundredfold over", requested: 1000000, cap: 10000, wantFactor: 10, wantReduce: true},
		{name: "fourfold over", requested: 400, cap: 100, wantFactor: 2, wantReduce: true},
		{name: "zero requested", requested: 0, cap: 10000, wantFactor: 1, wantReduce: false},
		{name: "negative requested", requested: -5, cap: 10000, wantFactor: 1, wantReduce: false},
		{name: "default cap when zero", requested: 9999, cap: 0, wantFactor: 1, wantReduce: false},
		{name: "default cap exceeded", requested: 40000, cap: 0, wantFactor: 2, wantReduce: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor, reduced := Limit(tt.requested, tt.cap)
			if reduced != tt.wantReduce {
				t.Errorf("Limit(%d, %d) reduced = %v, want %v", tt.requested, tt.cap, reduced, tt.wantReduce)
			}
			if math.Abs(factor-tt.wantFactor) > 1e-9 {
				t.Errorf("Limit(%d, %d) factor = %v, want %v", tt.requested, tt.cap, factor, tt.wantFactor)
			}
		})
	}
}

func TestLimitFactorBringsCountUnderCap(t *testing.T) {
	for _, requested := range []int{10001, 12345, 99999, 1000000, 50000000} {
		factor, reduced := Limit(requested, DefaultCap)
		if !reduced {
			t.Fatalf("Limit(%d, %d) not reduced", requested, DefaultCap)
		}
		realized := float64(requested) / (factor * factor)
		if realized > float64(DefaultCap)+1e-6 {
			t.Errorf("requested %d with factor %v realizes %v elements, cap %d", requested, factor, realized, DefaultCap)
		}
	}
}

func TestGridAxisCap(t *testing.T) {
	tests := []struct {
		name string
		cap  int
		w, h float64
	}{
		{name: "square", cap: 10000, w: 40, h: 40},
		{name: "wide", cap: 10000, w: 80, h: 20},
		{name: "tall", cap: 10000, w: 20, h: 80},
		{name: "tiny cap", cap: 1, w: 40, h: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maxCols, maxRows := gridAxisCap(tt.cap, tt.w, tt.h)
			if maxCols < 1 || maxRows < 1 {
				t.Fatalf("gridAxisCap(%d, %v, %v) = (%d, %d), want both >= 1", tt.cap, tt.w, tt.h, maxCols, maxRows)
			}
			if maxCols*maxRows > tt.cap && tt.cap >= 1 {
				if maxCols > 1 || maxRows > 1 {
					t.Errorf("gridAxisCap(%d, %v, %v) = (%d, %d), product %d over cap", tt.cap, tt.w, tt.h, maxCols, maxRows, maxCols*maxRows)
				}
			}
		})
	}

	// A square section splits the cap evenly.
	maxCols, maxRows := gridAxisCap(10000, 40, 40)
	if maxCols != 100 || maxRows != 100 {
		t.Errorf("square split = (%d, %d), want (100, 100)", maxCols, maxRows)
	}
}
