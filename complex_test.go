package mandel

import (
	"math"
	"testing"
)

func TestComplexAdd(t *testing.T) {
	got := NewComplex(1, 2).Add(NewComplex(-3, 0.5))
	want := NewComplex(-2, 2.5)
	if got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
}

func TestComplexMul(t *testing.T) {
	tests := []struct {
		name string
		a, b Complex
		want Complex
	}{
		{"i squared", NewComplex(0, 1), NewComplex(0, 1), NewComplex(-1, 0)},
		{"real", NewComplex(3, 0), NewComplex(-2, 0), NewComplex(-6, 0)},
		{"mixed", NewComplex(1, 2), NewComplex(3, 4), NewComplex(-5, 10)},
		{"zero", NewComplex(0, 0), NewComplex(7, -7), NewComplex(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Mul(tt.b); got != tt.want {
				t.Errorf("Mul() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComplexAbs(t *testing.T) {
	tests := []struct {
		c    Complex
		want float64
	}{
		{NewComplex(3, 4), 5},
		{NewComplex(-3, -4), 5},
		{NewComplex(0, 0), 0},
		{NewComplex(0, -2), 2},
	}
	for _, tt := range tests {
		if got := tt.c.Abs(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%v.Abs() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestComplexImmutable(t *testing.T) {
	a := NewComplex(1, 1)
	_ = a.Mul(a).Add(a)
	if a != NewComplex(1, 1) {
		t.Errorf("operand changed to %v", a)
	}
}
