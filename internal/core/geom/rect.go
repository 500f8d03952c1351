package geom

// Rect is an axis-aligned rectangle in pixel space. X,Y is the top-left
// corner; the pixel origin is the world's top-left, Y grows downward.
type Rect struct {
	X, Y float64
	W, H float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Overlaps reports whether r and o share interior area. Rectangles that
// only touch along an edge or corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && r.MaxX() > o.X && r.Y < o.MaxY() && r.MaxY() > o.Y
}

// Contains reports whether the point (px, py) lies inside the rectangle.
// Points on the left/top edge are inside, points on the right/bottom
// edge are not.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px < r.MaxX() && py >= r.Y && py < r.MaxY()
}

// Expand returns the rectangle grown by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}
