package mandel

// Escape is the normalized escape time of a point: iterations used divided by
// the iteration cap, in [0, 1]. Points that never escaped are Bounded.
type Escape float64

// Bounded marks a point that stayed below the stability threshold for the
// whole iteration budget. It is presumed to be inside the set.
const Bounded Escape = -1

// seed is the starting orbit value. Starting slightly off the origin keeps
// c = 0 from being trivially stable for one extra step.
const seed = 0.01

// Escaped reports whether the point left the stability disc.
func (e Escape) Escaped() bool {
	return e >= 0
}

// Evaluate iterates z = z*z + c from a near-zero seed until |z| reaches
// threshold or the iteration counter passes maxIterations.
func Evaluate(c Complex, maxIterations int, threshold float64) Escape {
	if maxIterations <= 0 {
		maxIterations = 1
	}
	iterations, escaped := iterate(c, maxIterations, threshold)
	if !escaped {
		return Bounded
	}
	v := float64(iterations) / float64(maxIterations)
	if v > 1 {
		v = 1
	}
	return Escape(v)
}

// iterate runs the orbit and returns the number of steps taken. At most
// maxIterations+1 steps run before the point is declared bounded.
func iterate(c Complex, maxIterations int, threshold float64) (iterations int, escaped bool) {
	z := NewComplex(seed, seed)
	for z.Abs() < threshold {
		if iterations > maxIterations {
			return iterations, false
		}
		iterations++
		z = z.Mul(z).Add(c)
	}
	return iterations, true
}
