package geom

// QuadBez is a quadratic Bézier curve with endpoints P0, P2 and control point P1.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval returns B(t) = (1-t)²·P0 + 2(1-t)t·P1 + t²·P2, applied to x and y
// independently. Eval(0) is P0 and Eval(1) is P2 exactly.
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	a, b, c := mt*mt, 2*mt*t, t*t
	return Point{
		X: a*q.P0.X + b*q.P1.X + c*q.P2.X,
		Y: a*q.P0.Y + b*q.P1.Y + c*q.P2.Y,
	}
}

// Sample evaluates the curve at n evenly spaced parameters t = i/(n-1).
// n below 2 is treated as 2 (just the endpoints).
func (q QuadBez) Sample(n int) []Point {
	n = max(n, 2)
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = q.Eval(float64(i) / float64(n-1))
	}
	return pts
}

// Reverse returns the same curve traversed from P2 to P0.
func (q QuadBez) Reverse() QuadBez {
	return QuadBez{P0: q.P2, P1: q.P1, P2: q.P0}
}

// Split divides the curve at t into the parts before and after Eval(t).
func (q QuadBez) Split(t float64) (QuadBez, QuadBez) {
	a := lerp(q.P0, q.P1, t)
	b := lerp(q.P1, q.P2, t)
	m := lerp(a, b, t)
	return QuadBez{P0: q.P0, P1: a, P2: m}, QuadBez{P0: m, P1: b, P2: q.P2}
}

// TrimEnd returns the part of the curve that stops length short of P2,
// measured in a straight line. Curves no longer than length are returned
// unchanged.
func (q QuadBez) TrimEnd(length float64) QuadBez {
	if length <= 0 || q.P0.Dist(q.P2) <= length {
		return q
	}
	lo, hi := 0.0, 1.0
	for range 50 {
		mid := (lo + hi) / 2
		if q.Eval(mid).Dist(q.P2) > length {
			lo = mid
		} else {
			hi = mid
		}
	}
	head, _ := q.Split(lo)
	return head
}

// CubicBez is a cubic Bézier curve from P0 to P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Cubic returns the same curve as a cubic: C1 = P0 + ⅔(P1−P0) and
// C2 = P2 + ⅔(P1−P2).
func (q QuadBez) Cubic() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Add(q.P1.Sub(q.P0).Scale(2.0 / 3)),
		P2: q.P2.Add(q.P1.Sub(q.P2).Scale(2.0 / 3)),
		P3: q.P2,
	}
}

// Eval returns the point at t.
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a, b, d, e := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

func lerp(p, q Point, t float64) Point {
	return p.Add(q.Sub(p).Scale(t))
}
