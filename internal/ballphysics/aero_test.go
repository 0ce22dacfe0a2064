package ballphysics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDragCoefficientHasCrisisTrough(t *testing.T) {
	low := dragCoefficient(30, 0)
	trough := dragCoefficient(90, 0)
	high := dragCoefficient(160, 0)

	if trough >= low {
		t.Errorf("expected drag crisis trough: Cd(90)=%.3f should be below Cd(30)=%.3f", trough, low)
	}
	if high <= trough {
		t.Errorf("expected Cd to rise again past the trough: Cd(160)=%.3f should exceed Cd(90)=%.3f", high, trough)
	}
}

func TestLiftCoefficientMonotoneAndSaturating(t *testing.T) {
	prev := 0.0
	for _, s := range []float64{0, 0.05, 0.1, 0.2, 0.3} {
		cl := liftCoefficient(s)
		if cl < prev {
			t.Errorf("liftCoefficient(%.2f) = %.4f is less than previous %.4f; expected monotone", s, cl, prev)
		}
		prev = cl
	}
	if got := liftCoefficient(0.3); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("liftCoefficient(0.3) = %.4f, want 0.3", got)
	}
	if got := liftCoefficient(1.0); got != liftCoefficient(0.3) {
		t.Errorf("liftCoefficient should saturate past S=0.3, got %.4f vs %.4f", got, liftCoefficient(0.3))
	}
}

func TestForceRejectsNonFiniteInputs(t *testing.T) {
	aero := DefaultAeroParams()
	_, err := aero.Force(r3.Vec{X: math.NaN()}, 2000, r3.Vec{X: 1})
	if err != ErrNonFiniteForce {
		t.Errorf("expected ErrNonFiniteForce, got %v", err)
	}
}

func TestForceZeroAtZeroVelocity(t *testing.T) {
	aero := DefaultAeroParams()
	f, err := aero.Force(r3.Vec{}, 2000, r3.Vec{X: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != (r3.Vec{}) {
		t.Errorf("expected zero force at zero velocity, got %v", f)
	}
}

func TestLookupTableApproximatesClosedForm(t *testing.T) {
	aero := DefaultAeroParams()
	lookup := aero.WithLookupTable()

	velocity := r3.Vec{X: -130}
	spinAxis := r3.Vec{X: 1}

	exact, err := aero.Force(velocity, 2200, spinAxis)
	if err != nil {
		t.Fatalf("exact Force errored: %v", err)
	}
	approx, err := lookup.Force(velocity, 2200, spinAxis)
	if err != nil {
		t.Fatalf("lookup Force errored: %v", err)
	}

	deviation := r3.Norm(r3.Sub(exact, approx)) / math.Max(r3.Norm(exact), 1e-9)
	if deviation > 0.05 {
		t.Errorf("lookup-table force deviates %.3f%% from closed form, want <=5%%", deviation*100)
	}
}

func TestNormalizeAxisZeroVector(t *testing.T) {
	if got := NormalizeAxis(r3.Vec{}); got != (r3.Vec{}) {
		t.Errorf("NormalizeAxis(zero) = %v, want zero vector", got)
	}
	unit := NormalizeAxis(r3.Vec{X: 3, Y: 4})
	if math.Abs(r3.Norm(unit)-1) > 1e-9 {
		t.Errorf("NormalizeAxis should return a unit vector, got norm %.4f", r3.Norm(unit))
	}
}
