package orbit

import (
	"fmt"
	"math"

	"solar-system-sim/internal/common"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Circle is a circle in the y = 0 plane recovered from sampled positions.
type Circle struct {
	Center r3.Vec
	Radius float64
	// ResidualError is ||Ax - b|| / sqrt(m) of the linearized fit; it is
	// close to zero when the samples lie on a circle.
	ResidualError float64
}

// FitCircle finds the circle through the x/z coordinates of the samples in
// the least squares sense. It needs at least three samples that are not all
// on one line.
//
// Every sample satisfies x² + z² = 2·cx·x + 2·cz·z + k with
// k = r² - cx² - cz², which is linear in (cx, cz, k).
func FitCircle(samples []r3.Vec) (Circle, error) {
	m := len(samples)
	if m < 3 {
		return Circle{}, fmt.Errorf("insufficient samples: got %d, need at least 3", m)
	}

	for i, p := range samples {
		if !common.IsFinite(p) {
			return Circle{}, fmt.Errorf("sample %d is not finite: %s", i, common.FormatVector(p))
		}
	}
	if collinear(samples) {
		return Circle{}, fmt.Errorf("samples are collinear")
	}

	aData := make([]float64, m*3)
	bData := make([]float64, m)
	for i, p := range samples {
		aData[i*3] = 2 * p.X
		aData[i*3+1] = 2 * p.Z
		aData[i*3+2] = 1
		bData[i] = p.X*p.X + p.Z*p.Z
	}
	A := mat.NewDense(m, 3, aData)
	b := mat.NewVecDense(m, bData)

	var qr mat.QR
	qr.Factorize(A)

	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return Circle{}, fmt.Errorf("QR least squares solve failed: %w", err)
	}

	var residual mat.VecDense
	residual.MulVec(A, &x)
	residual.SubVec(b, &residual)
	norm := blas64.Nrm2(residual.RawVector())

	cx, cz, k := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	r2 := k + cx*cx + cz*cz
	if r2 < 0 || math.IsNaN(r2) {
		return Circle{}, fmt.Errorf("samples do not describe a circle (r² = %g)", r2)
	}
	return Circle{
		Center:        r3.Vec{X: cx, Z: cz},
		Radius:        math.Sqrt(r2),
		ResidualError: norm / math.Sqrt(float64(m)),
	}, nil
}

// collinear reports whether all samples lie on one line in the x/z plane,
// relative to their spread.
func collinear(samples []r3.Vec) bool {
	origin := samples[0]
	var far r3.Vec
	var farDist float64
	for _, p := range samples[1:] {
		d := r3.Sub(p, origin)
		if n := math.Hypot(d.X, d.Z); n > farDist {
			far, farDist = d, n
		}
	}
	if farDist == 0 {
		return true
	}
	for _, p := range samples[1:] {
		d := r3.Sub(p, origin)
		if math.Abs(far.X*d.Z-far.Z*d.X) > 1e-9*farDist*farDist {
			return false
		}
	}
	return true
}
