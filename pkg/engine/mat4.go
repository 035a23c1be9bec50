package engine

import "math"

// Mat4 is a 4x4 single-precision matrix in column-major order, matching the
// layout the graphics host expects for matrix uniforms.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Translation returns a translation matrix.
func Translation(x, y, z float32) Mat4 {
	out := Identity()
	out[12] = x
	out[13] = y
	out[14] = z
	return out
}

// Scaling returns a uniform axis scaling matrix.
func Scaling(x, y, z float32) Mat4 {
	out := Identity()
	out[0] = x
	out[5] = y
	out[10] = z
	return out
}

// RotationY returns a rotation around the Y axis by angle radians.
func RotationY(angle float32) Mat4 {
	s := float32(math.Sin(float64(angle)))
	c := float32(math.Cos(float64(angle)))
	out := Identity()
	out[0] = c
	out[2] = -s
	out[8] = s
	out[10] = c
	return out
}

// Perspective returns a perspective projection matrix. fovy is in degrees.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovy)*math.Pi/360.0))
	d := near - far
	var out Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = (near + far) / d
	out[11] = -1
	out[14] = 2 * near * far / d
	return out
}

// LookAt returns a view matrix for a camera at eye looking at target.
func LookAt(eye, target, up [3]float32) Mat4 {
	fwd := normalize3(sub3(target, eye))
	side := normalize3(cross3(fwd, up))
	u := cross3(side, fwd)

	out := Identity()
	out[0], out[4], out[8] = side[0], side[1], side[2]
	out[1], out[5], out[9] = u[0], u[1], u[2]
	out[2], out[6], out[10] = -fwd[0], -fwd[1], -fwd[2]
	out[12] = -dot3(side, eye)
	out[13] = -dot3(u, eye)
	out[14] = dot3(fwd, eye)
	return out
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func normalize3(v [3]float32) [3]float32 {
	n := float32(math.Sqrt(float64(dot3(v, v))))
	if n == 0 {
		return v
	}
	return [3]float32{v[0] / n, v[1] / n, v[2] / n}
}
