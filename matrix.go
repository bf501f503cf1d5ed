package walkabout

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a 4x4 transform in row-vector form: a point p is transformed as
// p*M, so the translation lives in row 3.
type Matrix [4][4]float64

const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

func IdentMatrix() Matrix {
	var m Matrix
	m[0][0], m[1][1], m[2][2], m[3][3] = 1.0, 1.0, 1.0, 1.0
	return m
}

func TransMatrix(x, y, z float64) Matrix {
	m := IdentMatrix()
	m[3][0] = x
	m[3][1] = y
	m[3][2] = z
	return m
}

func ScaleMatrix(x, y, z float64) Matrix {
	m := IdentMatrix()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// NewRotationMatrix builds a right-handed rotation of theta radians about
// one axis.
func NewRotationMatrix(aRotation int, theta float64) Matrix {
	m := IdentMatrix()
	c, s := math.Cos(theta), math.Sin(theta)
	switch aRotation {
	case ROTX:
		m[1][1] = c
		m[1][2] = s
		m[2][1] = -s
		m[2][2] = c
	case ROTY:
		m[0][0] = c
		m[0][2] = -s
		m[2][0] = s
		m[2][2] = c
	case ROTZ:
		m[0][0] = c
		m[0][1] = s
		m[1][0] = -s
		m[1][1] = c
	}
	return m
}

// MultiplyBy returns m*o: applying the result is the same as applying m and
// then o.
func (m Matrix) MultiplyBy(o Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row][col] = m[row][0]*o[0][col] +
				m[row][1]*o[1][col] +
				m[row][2]*o[2][col] +
				m[row][3]*o[3][col]
		}
	}
	return r
}

func (m Matrix) TransformPoint(p Vector3) Vector3 {
	return Vector3{
		X: p.X*m[0][0] + p.Y*m[1][0] + p.Z*m[2][0] + m[3][0],
		Y: p.X*m[0][1] + p.Y*m[1][1] + p.Z*m[2][1] + m[3][1],
		Z: p.X*m[0][2] + p.Y*m[1][2] + p.Z*m[2][2] + m[3][2],
	}
}

// RotateVector3 applies only the 3x3 part of the matrix, which is what a
// direction vector needs.
func (m Matrix) RotateVector3(v Vector3) Vector3 {
	return Vector3{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
	}
}

// FromMgl converts a column-major mgl64 matrix (column-vector convention)
// into the row-vector form used here. The memory layout is the same.
func FromMgl(m mgl64.Mat4) Matrix {
	return Matrix{
		{m[0], m[1], m[2], m[3]},
		{m[4], m[5], m[6], m[7]},
		{m[8], m[9], m[10], m[11]},
		{m[12], m[13], m[14], m[15]},
	}
}

func (m Matrix) String() string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, val := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", val))
		}
	}
	return sb.String()
}
