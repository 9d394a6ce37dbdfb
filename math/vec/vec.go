package vec

import (
	"github.com/chewxy/math32"
)

type Vec3 [3]float32

const (
	PITCH = 0
	YAW   = 1
	ROLL  = 2
)

// Length returns the length of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Add returns a + b
func Add(a, b Vec3) Vec3 {
	return Vec3{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
	}
}

// Scale returns the vector multiplied by the skalar s
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{
		v[0] * s,
		v[1] * s,
		v[2] * s,
	}
}

// Normalize returns the normalized vector
func (v Vec3) Normalize() Vec3 {
	n, _ := v.NormalizeLength()
	return n
}

// NormalizeLength returns the normalized vector and the length of v.
// The null vector stays null.
func (v Vec3) NormalizeLength() (Vec3, float32) {
	l := v.Length()
	if l == 0 {
		return Vec3{}, 0
	}
	return v.Scale(1 / l), l
}

// Dot returns a dot b
func Dot(a Vec3, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// DoublePrecDot return a dot b calculated in double precision
func DoublePrecDot(a Vec3, b Vec3) float32 {
	p := func(x, y float32) float64 {
		return float64(x) * float64(y)
	}
	return float32(p(a[0], b[0]) + p(a[1], b[1]) + p(a[2], b[2]))
}

// Cross returns a cross b
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Lerp computes a weighted average between two points
func Lerp(a, b Vec3, frac float32) Vec3 {
	fi := 1 - frac
	return Vec3{
		fi*a[0] + frac*b[0],
		fi*a[1] + frac*b[1],
		fi*a[2] + frac*b[2],
	}
}

// WithZ returns v with its z component replaced.
func (v Vec3) WithZ(z float32) Vec3 {
	v[2] = z
	return v
}

// HasNaN reports whether any component is NaN.
func (v Vec3) HasNaN() bool {
	return math32.IsNaN(v[0]) || math32.IsNaN(v[1]) || math32.IsNaN(v[2])
}

// Clamp limits every component to [min, max].
func (v Vec3) Clamp(min, max float32) Vec3 {
	for i := range v {
		if v[i] < min {
			v[i] = min
		} else if v[i] > max {
			v[i] = max
		}
	}
	return v
}

func AngleVectors(angles Vec3) (forward, right, up Vec3) {
	deg := math32.Pi * 2 / 360
	sp, cp := math32.Sincos(angles[PITCH] * deg)
	sy, cy := math32.Sincos(angles[YAW] * deg)
	sr, cr := math32.Sincos(angles[ROLL] * deg)

	forward = Vec3{cp * cy, cp * sy, -sp}
	right = Vec3{
		(-1*sr*sp*cy + -1*cr*-sy),
		(-1*sr*sp*sy + -1*cr*cy),
		-1 * sr * cp,
	}
	up = Vec3{
		(cr*sp*cy + -sr*-sy),
		(cr*sp*sy + -sr*cy),
		cr * cp,
	}
	return
}
