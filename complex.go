package mandel

import "math"

// Complex is a point in the complex plane. Values are never mutated;
// every operation returns a new Complex.
type Complex struct {
	Real, Imag float64
}

func NewComplex(re, im float64) Complex {
	return Complex{Real: re, Imag: im}
}

// Add returns the componentwise sum a+b.
func (a Complex) Add(b Complex) Complex {
	return Complex{
		Real: a.Real + b.Real,
		Imag: a.Imag + b.Imag,
	}
}

// Mul returns the product a*b.
// (a + bi)(c + di) = (ac - bd) + (ad + bc)i
func (a Complex) Mul(b Complex) Complex {
	return Complex{
		Real: a.Real*b.Real - a.Imag*b.Imag,
		Imag: a.Real*b.Imag + a.Imag*b.Real,
	}
}

// Abs returns the magnitude of a. The result is never negative.
func (a Complex) Abs() float64 {
	return math.Abs(math.Sqrt(a.Real*a.Real + a.Imag*a.Imag))
}
