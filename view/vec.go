package view

import "golang.org/x/image/math/f64"

func add(a, b f64.Vec3) f64.Vec3 { return f64.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func sub(a, b f64.Vec3) f64.Vec3 { return f64.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func mul(a f64.Vec3, k float64) f64.Vec3 { return f64.Vec3{a[0] * k, a[1] * k, a[2] * k} }

func neg(a f64.Vec3) f64.Vec3 { return f64.Vec3{-a[0], -a[1], -a[2]} }

// Dot returns a · b.
func Dot(a, b f64.Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// lin returns k·p + l·q.
func lin(p f64.Vec3, k float64, q f64.Vec3, l float64) f64.Vec3 {
	return add(mul(p, k), mul(q, l))
}

// Cross returns a × b.
func Cross(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// row returns row i of a row-major matrix.
func row(m *f64.Mat3, i int) f64.Vec3 {
	return f64.Vec3{m[3*i], m[3*i+1], m[3*i+2]}
}

func rows(h, v, o f64.Vec3) f64.Mat3 {
	return f64.Mat3{
		h[0], h[1], h[2],
		v[0], v[1], v[2],
		o[0], o[1], o[2],
	}
}

// apply returns m·p.
func apply(m *f64.Mat3, p f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2],
		m[3]*p[0] + m[4]*p[1] + m[5]*p[2],
		m[6]*p[0] + m[7]*p[1] + m[8]*p[2],
	}
}

// applyT returns mᵀ·q. For a rotation this is the inverse of apply.
func applyT(m *f64.Mat3, q f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		m[0]*q[0] + m[3]*q[1] + m[6]*q[2],
		m[1]*q[0] + m[4]*q[1] + m[7]*q[2],
		m[2]*q[0] + m[5]*q[1] + m[8]*q[2],
	}
}
