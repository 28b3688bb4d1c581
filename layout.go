package wm

import "image"

const floatWidth, floatHeight = 640, 480

// Arrange recomputes every visible client's geometry on m and pushes it
// to the surface. It is pure over (m, the clients list, the current
// tagset): calling it twice in a row with no intervening state change
// produces byte-identical rectangles.
func (s *State) Arrange(m *Monitor) {
	if m == nil {
		return
	}

	if m.fullscreen != nil {
		c := m.fullscreen
		c.geom = applybounds(m.m, m.m)
		c.resize = c.surface.SetSize(c.geom)
		return
	}

	var tiled []*Client
	s.clients.forEach(func(c *Client) bool {
		if c.mon != m || !visibleOn(c.tags, m) {
			return true
		}
		if isFloatingAppID(c.surface.AppID()) {
			s.placeFloating(c, m)
		} else {
			tiled = append(tiled, c)
		}
		return true
	})

	n := len(tiled)
	if n == 0 {
		return
	}

	if n == 1 {
		tiled[0].geom = applybounds(m.w, m.m)
		tiled[0].resize = tiled[0].surface.SetSize(tiled[0].geom)
		return
	}

	// master-stack split, nmaster fixed at 1: the
	// master fills the left half at full height; the stack divides the
	// right half's height across the remaining n-1 clients, each slot's
	// height computed against what's left so floor-division remainder
	// accumulates onto the last slot rather than being dropped.
	mw := m.w.Dx() / 2
	ty := 0
	for i, c := range tiled {
		if i == 0 {
			r := image.Rect(m.w.Min.X, m.w.Min.Y, m.w.Min.X+mw, m.w.Min.Y+m.w.Dy())
			c.geom = applybounds(r, m.m)
			c.resize = c.surface.SetSize(c.geom)
			continue
		}
		h := (m.w.Dy() - ty) / (n - i)
		r := image.Rect(m.w.Min.X+mw, m.w.Min.Y+ty, m.w.Min.X+m.w.Dx(), m.w.Min.Y+ty+h)
		c.geom = applybounds(r, m.m)
		c.resize = c.surface.SetSize(c.geom)
		ty += c.geom.Dy()
	}
}

// placeFloating assigns the deterministic, monitor-centered default
// rect to a floating-override client.
func (s *State) placeFloating(c *Client, m *Monitor) {
	x := m.w.Min.X + (m.w.Dx()-floatWidth)/2
	y := m.w.Min.Y + (m.w.Dy()-floatHeight)/2
	r := image.Rect(x, y, x+floatWidth, y+floatHeight)
	c.geom = applybounds(r, m.m)
	c.resize = c.surface.SetSize(c.geom)
}
