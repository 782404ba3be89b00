package mandel

import "testing"

func TestEvaluateOriginIsBounded(t *testing.T) {
	if got := Evaluate(NewComplex(0, 0), 100, 2); got != Bounded {
		t.Errorf("Evaluate(0) = %v, want Bounded", got)
	}
}

func TestEvaluateFarPointEscapesImmediately(t *testing.T) {
	got := Evaluate(NewComplex(-2, -2), 10, 2)
	if got != 0.1 {
		t.Errorf("Evaluate(-2-2i) = %v, want 0.1", got)
	}
	if !got.Escaped() {
		t.Error("Escaped() = false, want true")
	}
}

func TestEvaluateTerminates(t *testing.T) {
	const maxIter = 50
	for re := -2.5; re <= 2.5; re += 0.125 {
		for im := -2.5; im <= 2.5; im += 0.125 {
			c := NewComplex(re, im)
			n, _ := iterate(c, maxIter, 2)
			if n > maxIter+1 {
				t.Fatalf("iterate(%v) took %d steps, want <= %d", c, n, maxIter+1)
			}
			if e := Evaluate(c, maxIter, 2); e != Bounded && (e < 0 || e > 1) {
				t.Fatalf("Evaluate(%v) = %v, outside [0, 1]", c, e)
			}
		}
	}
}

func TestEvaluateBoundedUsesFullBudget(t *testing.T) {
	n, escaped := iterate(NewComplex(-1, 0), 10, 2)
	if escaped {
		t.Fatal("c = -1 escaped, want bounded")
	}
	if n != 11 {
		t.Errorf("iterate() = %d steps, want 11", n)
	}
}

func TestEvaluateSeedAboveThreshold(t *testing.T) {
	// the seed alone is already outside a tiny disc
	if got := Evaluate(NewComplex(0, 0), 10, 0.001); got != 0 {
		t.Errorf("Evaluate() = %v, want 0", got)
	}
}

func TestEvaluateNonPositiveCap(t *testing.T) {
	if got := Evaluate(NewComplex(-2, -2), 0, 2); got != 1 {
		t.Errorf("Evaluate(cap 0) = %v, want 1", got)
	}
}

func TestEvaluateClampsToOne(t *testing.T) {
	// c = 0.3 escapes slowly; with a small cap it can escape on the extra step
	for maxIter := 1; maxIter < 40; maxIter++ {
		if e := Evaluate(NewComplex(0.3, 0), maxIter, 2); e > 1 {
			t.Fatalf("Evaluate(cap %d) = %v, want <= 1", maxIter, e)
		}
	}
}
