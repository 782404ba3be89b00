package mandel

// PlaneCoord maps one pixel axis onto the canonical [-2, 2] window of the
// complex plane. With zero offset and magnification 1, pixel 0 maps to -2 and
// pixel extent maps to +2. offset is a translation in pre-scaled pixel units;
// magnification divides the visible window.
func PlaneCoord(pixel, extent, offset, magnification float64) float64 {
	return ((pixel+offset)/extent/magnification)*4 - 2
}

// Point is a pair of pixel-space values: a screen position, an offset or a
// velocity.
type Point struct {
	X, Y float64
}

// FrameTask is the immutable view snapshot every worker of one frame renders
// against.
type FrameTask struct {
	Offset        Point
	Magnification float64
}

// PixelToComplex maps the screen pixel (x, y) of a width×height screen to the
// complex plane as seen through t.
func (t FrameTask) PixelToComplex(x, y, width, height float64) Complex {
	return NewComplex(
		PlaneCoord(x, width, t.Offset.X, t.Magnification),
		PlaneCoord(y, height, t.Offset.Y, t.Magnification),
	)
}
