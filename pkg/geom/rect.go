package geom

// Rect is an axis-aligned rectangle given by its center and size.
type Rect struct {
	Center Point   `json:"center"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

// Min returns the lower-left corner.
func (r Rect) Min() Point { return Point{r.Center.X - r.W/2, r.Center.Y - r.H/2} }

// Max returns the upper-right corner.
func (r Rect) Max() Point { return Point{r.Center.X + r.W/2, r.Center.Y + r.H/2} }

// Corners returns the four corners counter-clockwise from lower-left.
func (r Rect) Corners() [4]Point {
	lo, hi := r.Min(), r.Max()
	return [4]Point{lo, {hi.X, lo.Y}, hi, {lo.X, hi.Y}}
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Point) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}
