package wm

import "image"

// applybounds clips r so it falls inside bounds: width/height are clamped
// to at least 1px, and a rectangle that would land entirely outside
// bounds is shifted back to the nearest inside edge rather than resized.
// Idempotent: the same input always yields the same output.
func applybounds(r image.Rectangle, bounds image.Rectangle) image.Rectangle {
	w := r.Dx()
	if w < 1 {
		w = 1
	}
	h := r.Dy()
	if h < 1 {
		h = 1
	}
	x, y := r.Min.X, r.Min.Y

	if x >= bounds.Min.X+bounds.Dx() {
		x = bounds.Min.X + bounds.Dx() - w
	}
	if y >= bounds.Min.Y+bounds.Dy() {
		y = bounds.Min.Y + bounds.Dy() - h
	}
	if x+w <= bounds.Min.X {
		x = bounds.Min.X
	}
	if y+h <= bounds.Min.Y {
		y = bounds.Min.Y
	}
	return image.Rect(x, y, x+w, y+h)
}

// unionRect returns the smallest rectangle containing both a and b,
// treating haveA == false as "no rectangle yet" and returning b (used to
// fold sgeom over a monitor list one at a time).
func unionRect(a, b image.Rectangle, haveA bool) image.Rectangle {
	if !haveA {
		return b
	}
	return a.Union(b)
}
