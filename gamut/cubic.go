package gamut

import (
	"math"

	"github.com/kovidgoyal/okcolor/colorconv"
)

// cubic is the value of one RGB channel along the OKLab ray (1, S·a, S·b)
// as a polynomial in S: c[3]·S³ + c[2]·S² + c[1]·S + c[0]
type cubic [4]float64

// channel_cubic expands the channel whose row of the LMS to RGB matrix is w
func channel_cubic(a, b float64, w [3]float64) (c cubic) {
	m := &colorconv.OKLabToLMS
	for j := range 3 {
		l := m[j][0]
		k := m[j][1]*a + m[j][2]*b
		c[0] += w[j] * l * l * l
		c[1] += 3 * w[j] * l * l * k
		c[2] += 3 * w[j] * l * k * k
		c[3] += w[j] * k * k * k
	}
	return
}

func (c *cubic) at(s float64) float64 { return ((c[3]*s+c[2])*s+c[1])*s + c[0] }

func (c *cubic) slope(s float64) float64 { return (3*c[3]*s+2*c[2])*s + c[1] }

func (c *cubic) curvature(s float64) float64 { return 6*c[3]*s + 2*c[2] }

// critical_points returns the points in (0, limit) where the slope is zero, in increasing order
func (c *cubic) critical_points(limit float64) (ans [2]float64, n int) {
	qa, qb, qc := 3*c[3], 2*c[2], c[1]
	var crit [2]float64
	num := 0
	switch {
	case qa != 0:
		if d := qb*qb - 4*qa*qc; d >= 0 {
			// numerically stable form of the quadratic roots
			q := -0.5 * (qb + math.Copysign(math.Sqrt(d), qb))
			crit[0] = q / qa
			num = 1
			if q != 0 {
				crit[1] = qc / q
				num = 2
			}
		}
	case qb != 0:
		crit[0] = -qc / qb
		num = 1
	}
	if num == 2 && crit[1] < crit[0] {
		crit[0], crit[1] = crit[1], crit[0]
	}
	for _, x := range crit[:num] {
		if x > 0 && x < limit {
			ans[n] = x
			n++
		}
	}
	return
}

// first_root returns the smallest S in (0, limit] at which the channel
// goes from non-negative to negative. Between critical points the cubic is
// monotonic, so each interval holds at most one such crossing.
func (c *cubic) first_root(limit float64) (float64, bool) {
	crit, n := c.critical_points(limit)
	lo := 0.0
	for i := 0; i <= n; i++ {
		hi := limit
		if i < n {
			hi = crit[i]
		}
		if c.at(hi) < 0 && c.at(lo) >= 0 {
			return c.bracketed_root(lo, hi), true
		}
		lo = hi
	}
	return limit, false
}

// bracketed_root finds the root in [lo, hi] given at(lo) >= 0 > at(hi),
// using Newton steps and falling back to bisection when a step leaves the
// bracket.
func (c *cubic) bracketed_root(lo, hi float64) float64 {
	x := hi
	for range 60 {
		f := c.at(x)
		if f > 0 {
			lo = x
		} else {
			hi = x
		}
		nx := (lo + hi) / 2
		if d := c.slope(x); d != 0 {
			if n := x - f/d; n >= lo && n <= hi {
				nx = n
			}
		}
		if nx == x {
			break
		}
		x = nx
	}
	return x
}
