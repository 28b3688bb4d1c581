package wm

import (
	"log"
	"time"

	"gioui.org/f32"
)

// RenderOutput is the per-output frame handler, invoked
// on the backend's "frame" event: clear, composite the stack back-to-
// front and the independents on top, then commit. A surface with no
// currently attached texture is skipped silently rather than emitting
// frame-done.
func (s *State) RenderOutput(m *Monitor, now time.Time) {
	if !m.output.AttachRender() {
		log.Printf("wm: output %s: render attach failed, dropping frame", m.output.Name())
		return
	}
	defer m.output.End()

	s.renderer.Begin(m.m.Dx(), m.m.Dy())
	s.renderer.Clear(0, 0, 0, 1)

	focused := s.seat.FocusedKeyboardSurface()

	reverseForEach(s.stack.slice(), func(c *Client) {
		s.renderClient(m, c, now, focused)
	})
	reverseForEach(s.independents.slice(), func(c *Client) {
		s.renderClient(m, c, now, focused)
	})

	s.renderer.End()
	m.output.Commit()
}

// renderClient composites one client onto m if it is currently visible
// there and its rectangle intersects the output.
func (s *State) renderClient(m *Monitor, c *Client, now time.Time, focusedSurface SurfaceHandle) {
	if c.surface.Kind() != X11Unmanaged {
		if c.mon != m || !visibleOn(c.tags, m) {
			return
		}
	}
	if !c.geom.Overlaps(m.m) {
		return
	}

	ox, oy := c.geom.Min.X-m.m.Min.X, c.geom.Min.Y-m.m.Min.Y
	alpha := float32(0.8)
	if c.surface.RootSurface() == focusedSurface {
		alpha = 1.0
	}

	c.surface.ForEachSurface(func(sub SurfaceHandle, sx, sy int) {
		tex, ok := s.renderer.TextureFor(sub)
		if !ok {
			return
		}
		transform := f32.Affine2D{}.Offset(f32.Pt(float32(ox+sx), float32(oy+sy)))
		s.renderer.RenderTexturedQuad(tex, transform, alpha)
		s.renderer.NotifyFrameDone(sub, now)
	})
}

// reverseForEach visits a slice back-to-front, matching "iterate stack
// back-to-front" (bottom of the z-order composited first).
func reverseForEach[T any](s []T, fn func(T)) {
	for i := len(s) - 1; i >= 0; i-- {
		fn(s[i])
	}
}
