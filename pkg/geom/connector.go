package geom

const (
	// DefaultBow scales the control point's offset from the origin.
	DefaultBow = 1.3

	// DefaultArrowLength is the shaft length drawn back from the destination.
	DefaultArrowLength = 0.4

	// DefaultSamples yields t ∈ {0, 0.5, 1}.
	DefaultSamples = 3
)

// Option configures [Connect].
type Option func(*connectOpts)

type connectOpts struct {
	bow      float64
	arrowLen float64
	samples  int
}

// WithBow sets the outward scale factor applied to the control point.
// A factor of 1 yields a straight connector.
func WithBow(f float64) Option { return func(o *connectOpts) { o.bow = f } }

// WithArrowLength sets the arrow shaft length.
func WithArrowLength(l float64) Option { return func(o *connectOpts) { o.arrowLen = l } }

// WithSamples sets how many points the curve is sampled at (minimum 2).
func WithSamples(n int) Option { return func(o *connectOpts) { o.samples = max(n, 2) } }

// Curve is a sampled quadratic Bézier.
type Curve struct {
	Bez     QuadBez `json:"-"`
	Control Point   `json:"control"`
	Samples []Point `json:"samples"`
}

// Start returns the first sample.
func (c Curve) Start() Point { return c.Samples[0] }

// End returns the last sample.
func (c Curve) End() Point { return c.Samples[len(c.Samples)-1] }

// Arrow is a directed shaft ending at Tip.
type Arrow struct {
	Tip   Point   `json:"tip"`
	Tail  Point   `json:"tail"`
	Angle float64 `json:"angle"`
}

// Head returns the vertices of a triangular arrowhead whose point is at the tip:
// the tip itself followed by the two barbs, length back along the shaft and
// halfWidth to either side.
func (a Arrow) Head(length, halfWidth float64) [3]Point {
	dir := Polar(a.Angle)
	normal := Point{-dir.Y, dir.X}
	base := a.Tip.Sub(dir.Scale(length))
	return [3]Point{
		a.Tip,
		base.Add(normal.Scale(halfWidth)),
		base.Sub(normal.Scale(halfWidth)),
	}
}

// Connector is the curved line and arrow between two points.
type Connector struct {
	Curve Curve `json:"curve"`
	Arrow Arrow `json:"arrow"`
}

// ControlPoint returns the midpoint of p0 and p1, pushed away from origin by
// bow. When the midpoint coincides with origin it is returned unscaled.
func ControlPoint(p0, p1, origin Point, bow float64) Point {
	m := Midpoint(p0, p1)
	off := m.Sub(origin)
	if off.Len() == 0 {
		return m
	}
	return origin.Add(off.Scale(bow))
}

// Connect computes the curve from p0 to p1 bowing away from origin, and the
// arrow at p1 oriented along the last sampled segment.
func Connect(p0, p1, origin Point, opts ...Option) Connector {
	o := connectOpts{bow: DefaultBow, arrowLen: DefaultArrowLength, samples: DefaultSamples}
	for _, opt := range opts {
		opt(&o)
	}

	bez := QuadBez{P0: p0, P1: ControlPoint(p0, p1, origin, o.bow), P2: p1}
	samples := bez.Sample(o.samples)

	return Connector{
		Curve: Curve{Bez: bez, Control: bez.P1, Samples: samples},
		Arrow: arrowAt(samples, o.arrowLen),
	}
}

func arrowAt(samples []Point, length float64) Arrow {
	tip := samples[len(samples)-1]
	prev := samples[len(samples)-2]
	angle := tip.Sub(prev).Angle()
	return Arrow{
		Tip:   tip,
		Tail:  tip.Sub(Polar(angle).Scale(length)),
		Angle: angle,
	}
}
