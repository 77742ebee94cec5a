package colorconv

import (
	"fmt"
)

// Vec3 is a color with three coordinates. It is always passed by value so
// that conversion chains never allocate and inputs can double as outputs.
type Vec3 [3]float64

// Mat3 is a row major 3x3 matrix.
type Mat3 [3][3]float64

var IdentityMat3 = Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Transform returns m·v.
func (m *Mat3) Transform(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Multiply returns m·o.
func (m *Mat3) Multiply(o Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			sum := 0.0
			for k := range 3 {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func (m *Mat3) Transpose() (ans Mat3) {
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = m[j][i]
		}
	}
	return
}

func (m *Mat3) Inverted() (ans Mat3, err error) {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])

	if det == 0 {
		return ans, fmt.Errorf("matrix is singular and cannot be inverted")
	}
	inv_det := 1 / det
	adj := Mat3{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = inv_det * adj[i][j]
		}
	}
	return
}

func (m *Mat3) String() string {
	return fmt.Sprintf("Mat3{%.6v, %.6v, %.6v}", m[0], m[1], m[2])
}

// mustInvert is only used on the fixed, well conditioned matrices set up in
// init, where a failure is a programming error.
func mustInvert(m Mat3) Mat3 {
	ans, err := m.Inverted()
	if err != nil {
		panic(err)
	}
	return ans
}

// rational builds a matrix from entries written as exact fractions.
func rational(v [9]float64) Mat3 {
	return Mat3{{v[0], v[1], v[2]}, {v[3], v[4], v[5]}, {v[6], v[7], v[8]}}
}
