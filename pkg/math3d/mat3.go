package math3d

import "math"

// Mat3 is a 3x3 matrix indexed [row][column].
//
// Vectors are treated as rows and multiplied on the left, v' = v · M, so the
// rows of a rotation matrix are the images of the X, Y and Z axes.
type Mat3 [3][3]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Scale3 creates a uniform scaling matrix.
func Scale3(s float64) Mat3 {
	return Mat3{
		{s, 0, 0},
		{0, s, 0},
		{0, 0, s},
	}
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// Mul returns the product a · b. With row vectors, v · (a · b) applies a
// first and b second.
func (a Mat3) Mul(b Mat3) Mat3 {
	var r Mat3
	for i := range 3 {
		for j := range 3 {
			r[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return r
}

// Scale returns the matrix with every element multiplied by s.
func (a Mat3) Scale(s float64) Mat3 {
	for i := range 3 {
		for j := range 3 {
			a[i][j] *= s
		}
	}
	return a
}

// Transpose returns the transposed matrix. For a rotation this is the inverse.
func (a Mat3) Transpose() Mat3 {
	return Mat3{
		{a[0][0], a[1][0], a[2][0]},
		{a[0][1], a[1][1], a[2][1]},
		{a[0][2], a[1][2], a[2][2]},
	}
}
