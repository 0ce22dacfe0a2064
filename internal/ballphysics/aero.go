package ballphysics

import (
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r3"
)

// AeroParams are the inputs to the aerodynamic force model that don't
// change step to step: air density and ball geometry/mass.
type AeroParams struct {
	AirDensitySlugFt3 float64
	BallRadiusFt      float64
	BallMassSlug      float64
	UseLookupTable    bool

	table *coeffTable // lazily built, nil unless UseLookupTable
}

// DefaultAeroParams returns sea-level air density and a regulation
// baseball's radius (1.45 in) and mass (0.145 kg, converted to slugs).
func DefaultAeroParams() AeroParams {
	return AeroParams{
		AirDensitySlugFt3: 0.0023769,
		BallRadiusFt:      1.45 / 12.0,
		BallMassSlug:      0.145 * 0.0685218,
		UseLookupTable:    false,
	}
}

// WithLookupTable returns a copy configured to use the bilinear (v, spin)
// coefficient table instead of the exact drag-crisis/Magnus formulas.
func (p AeroParams) WithLookupTable() AeroParams {
	p.UseLookupTable = true
	p.table = buildCoeffTable(p)
	return p
}

// spinParameter computes S = r*omega/v, the nondimensional spin factor
// that both the drag-crisis spin term and the Magnus lift coefficient key
// off of.
func spinParameter(radiusFt, spinRPM, speedFtS float64) float64 {
	if speedFtS <= 0 {
		return 0
	}
	omega := spinRPM * 2 * math.Pi / 60
	return radiusFt * omega / speedFtS
}

// dragCoefficient implements spec.md §4.1: Cd ~= 0.35 below 50 ft/s,
// dipping through a drag-crisis trough of ~0.30 near 90 ft/s, then rising
// again with spin.
func dragCoefficient(speedFtS, spinParam float64) float64 {
	var base float64
	switch {
	case speedFtS < 50:
		base = 0.35
	case speedFtS < 90:
		t := (speedFtS - 50) / 40
		base = 0.35 - 0.05*t
	default:
		rise := (speedFtS - 90) * 0.0003
		if rise > 0.08 {
			rise = 0.08
		}
		base = 0.30 + rise
	}
	base += 0.10 * math.Min(spinParam, 0.4)
	if base < 0.26 {
		base = 0.26
	}
	if base > 0.50 {
		base = 0.50
	}
	return base
}

// liftCoefficient implements spec.md §4.1: Cl monotone in S, saturating
// near 0.3 once S >= 0.3.
func liftCoefficient(spinParam float64) float64 {
	if spinParam <= 0 {
		return 0
	}
	if spinParam >= 0.3 {
		return 0.3
	}
	return 0.3 * (spinParam / 0.3)
}

// Force computes the aerodynamic force vector (drag + Magnus) acting on
// the ball, in lbf. It fails with ErrNonFiniteForce (propagated so the
// integrator can abort the trajectory) whenever an input is NaN/Inf.
func (p AeroParams) Force(velocity r3.Vec, spinRPM float64, spinAxis r3.Vec) (r3.Vec, error) {
	if !finiteVec(velocity) || math.IsNaN(spinRPM) || math.IsInf(spinRPM, 0) || !finiteVec(spinAxis) {
		return r3.Vec{}, ErrNonFiniteForce
	}

	speed := r3.Norm(velocity)
	if speed == 0 {
		return r3.Vec{}, nil
	}

	var cd, cl float64
	if p.UseLookupTable {
		if p.table == nil {
			p.table = buildCoeffTable(p)
		}
		cd, cl = p.table.interpolate(speed, spinRPM)
	} else {
		s := spinParameter(p.BallRadiusFt, spinRPM, speed)
		cd = dragCoefficient(speed, s)
		cl = liftCoefficient(s)
	}

	area := math.Pi * p.BallRadiusFt * p.BallRadiusFt
	dynamicPressure := 0.5 * p.AirDensitySlugFt3 * area * speed * speed

	vHat := r3.Scale(1/speed, velocity)
	drag := r3.Scale(-dynamicPressure*cd, vHat)

	spinHat := NormalizeAxis(spinAxis)
	liftDir := r3.Cross(spinHat, vHat)
	liftDirNorm := r3.Norm(liftDir)
	var lift r3.Vec
	if liftDirNorm > 0 {
		lift = r3.Scale(dynamicPressure*cl/liftDirNorm, liftDir)
	}

	total := r3.Add(drag, lift)
	if !finiteVec(total) {
		return r3.Vec{}, ErrNonFiniteForce
	}
	return total, nil
}

// coeffTable tabulates (Cd, Cl) on a 1 ft/s x 100 rpm grid and bilinearly
// interpolates, per spec.md §4.1's use_lookup_table mode. Each axis uses
// gonum's 1-D piecewise-linear predictor; bilinear interpolation composes
// two of those (interpolate along spin at the two bracketing speeds, then
// interpolate the result along speed) since gonum's interp package is 1-D.
type coeffTable struct {
	speeds    []float64 // ft/s, 1 ft/s steps
	spins     []float64 // rpm, 100 rpm steps
	cd        [][]float64
	cl        [][]float64
	speedStep float64
	spinStep  float64
}

const (
	tableMaxSpeedFtS = 160.0
	tableMaxSpinRPM  = 3500.0
)

func buildCoeffTable(p AeroParams) *coeffTable {
	nSpeed := int(tableMaxSpeedFtS) + 1
	nSpin := int(tableMaxSpinRPM/100) + 1

	t := &coeffTable{
		speeds:    make([]float64, nSpeed),
		spins:     make([]float64, nSpin),
		cd:        make([][]float64, nSpeed),
		cl:        make([][]float64, nSpeed),
		speedStep: 1.0,
		spinStep:  100.0,
	}
	for i := 0; i < nSpeed; i++ {
		t.speeds[i] = float64(i)
	}
	for j := 0; j < nSpin; j++ {
		t.spins[j] = float64(j) * 100.0
	}
	for i, v := range t.speeds {
		t.cd[i] = make([]float64, nSpin)
		t.cl[i] = make([]float64, nSpin)
		for j, rpm := range t.spins {
			s := spinParameter(p.BallRadiusFt, rpm, math.Max(v, 0.5))
			t.cd[i][j] = dragCoefficient(v, s)
			t.cl[i][j] = liftCoefficient(s)
		}
	}
	return t
}

// interpolate performs bilinear interpolation of (Cd, Cl) at (speed, spin).
func (t *coeffTable) interpolate(speedFtS, spinRPM float64) (cd, cl float64) {
	speedFtS = clamp(speedFtS, t.speeds[0], t.speeds[len(t.speeds)-1])
	spinRPM = clamp(spinRPM, t.spins[0], t.spins[len(t.spins)-1])

	i0 := int(speedFtS / t.speedStep)
	if i0 >= len(t.speeds)-1 {
		i0 = len(t.speeds) - 2
	}
	j0 := int(spinRPM / t.spinStep)
	if j0 >= len(t.spins)-1 {
		j0 = len(t.spins) - 2
	}

	// Interpolate along the spin axis at the two bracketing speed rows,
	// each via a 1-D piecewise-linear predictor (gonum/interp), then
	// interpolate those two results along the speed axis.
	cdLowRow := piecewiseAt(t.spins[j0:j0+2], t.cd[i0][j0:j0+2], spinRPM)
	cdHighRow := piecewiseAt(t.spins[j0:j0+2], t.cd[i0+1][j0:j0+2], spinRPM)
	clLowRow := piecewiseAt(t.spins[j0:j0+2], t.cl[i0][j0:j0+2], spinRPM)
	clHighRow := piecewiseAt(t.spins[j0:j0+2], t.cl[i0+1][j0:j0+2], spinRPM)

	cd = piecewiseAt(t.speeds[i0:i0+2], []float64{cdLowRow, cdHighRow}, speedFtS)
	cl = piecewiseAt(t.speeds[i0:i0+2], []float64{clLowRow, clHighRow}, speedFtS)
	return cd, cl
}

func piecewiseAt(xs, ys []float64, x float64) float64 {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		// Degenerate (equal xs): both ys should be equal; fall back to ys[0].
		return ys[0]
	}
	return pl.Predict(clamp(x, xs[0], xs[len(xs)-1]))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
