// Package smooth provides regularized replacements for the discontinuous
// functions that show up in physical component equations. Newton iteration
// needs continuous first derivatives; a hard sign flip or square-root kink
// at zero stalls convergence, so components blend through a small
// transition band instead.
package smooth

import "math"

// Step is the cubic smoothstep. It rises from 0 to 1 as x sweeps [0, 1]
// and clamps outside that interval. Both the value and the first
// derivative are continuous at the edges.
func Step(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x * x * (3 - 2*x)
}

// Step5 is the quintic smootherstep, continuous through the second
// derivative at the edges.
func Step5(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x * x * x * (x*(x*6-15) + 10)
}

// Blend interpolates between lo and hi as x sweeps [edge0, edge1].
// Outside the band it returns lo or hi exactly.
func Blend(x, edge0, edge1, lo, hi float64) float64 {
	w := Step((x - edge0) / (edge1 - edge0))
	return lo + w*(hi-lo)
}

// Abs is |x| regularized near zero. It equals eps at x = 0 and approaches
// |x| for |x| >> eps.
func Abs(x, eps float64) float64 {
	return math.Sqrt(x*x + eps*eps)
}

// Sign approaches -1 and +1 outside a band of width eps around zero and
// passes smoothly through the origin.
func Sign(x, eps float64) float64 {
	return math.Tanh(x / eps)
}

// SignedSqrt is sign(x)*sqrt(|x|) with the infinite slope at zero replaced
// by a finite one of order 1/sqrt(eps). Used for orifice flow laws.
func SignedSqrt(x, eps float64) float64 {
	return x / math.Pow(x*x+eps*eps, 0.25)
}

// SignedSqrtSlope is the first derivative of SignedSqrt. It is strictly
// positive for every x, which keeps Jacobians nonsingular.
func SignedSqrtSlope(x, eps float64) float64 {
	q := x*x + eps*eps
	return (0.5*x*x + eps*eps) / math.Pow(q, 1.25)
}

// Max is a smooth maximum. The result exceeds the true maximum by at most
// eps/2, with the error concentrated where a and b cross.
func Max(a, b, eps float64) float64 {
	return 0.5 * (a + b + Abs(a-b, eps))
}

// Min is a smooth minimum, the mirror of Max.
func Min(a, b, eps float64) float64 {
	return 0.5 * (a + b - Abs(a-b, eps))
}

// Clamp limits x to [lo, hi] with rounded corners of width eps.
func Clamp(x, lo, hi, eps float64) float64 {
	return Min(Max(x, lo, eps), hi, eps)
}
