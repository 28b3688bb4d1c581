package wm

// focusclient is the focus manager's core operation:
// optionally lifts c to the top of the stacking order, updates the
// focus list and selmon, deactivates whatever surface previously held
// keyboard focus, and notifies the seat of the new keyboard focus.
func (s *State) focusclient(c *Client, lift bool) {
	old := s.seat.FocusedKeyboardSurface()

	if c != nil && lift {
		s.stack.moveFront(c)
	}

	if c != nil && c.surface.RootSurface() == old {
		return
	}

	if c != nil {
		s.fstack.moveFront(c)
		s.selmon = c.mon
	}

	if old != nil && (c == nil || c.surface.RootSurface() != old) {
		s.deactivateSurface(old)
	}

	if c == nil {
		s.seat.NotifyKeyboardClearFocus()
		return
	}

	kb := s.currentKeyboardKeycodes()
	s.seat.NotifyKeyboardEnter(c.surface.RootSurface(), kb, s.currentModifiers())
	c.surface.SetActivated(true)
}

// deactivateSurface finds the Client currently backing `old` (if any)
// across every list and clears its activated bit.
func (s *State) deactivateSurface(old SurfaceHandle) {
	var found *Client
	s.clients.forEach(func(c *Client) bool {
		if c.surface.RootSurface() == old {
			found = c
			return false
		}
		return true
	})
	if found == nil {
		s.independents.forEach(func(c *Client) bool {
			if c.surface.RootSurface() == old {
				found = c
				return false
			}
			return true
		})
	}
	if found != nil {
		found.surface.SetActivated(false)
	}
}

// pointerfocus routes surface-level pointer focus: it
// notifies enter/motion on the seat and, unless the hit client is an
// X11-unmanaged override-redirect surface, also gives it keyboard focus.
func (s *State) pointerfocus(c *Client, surface SurfaceHandle, sx, sy float64, time uint32) {
	if c != nil && surface == nil {
		surface = c.surface.RootSurface()
	}
	if surface == nil {
		s.seat.NotifyPointerClearFocus()
		return
	}
	if s.seat.FocusedPointerSurface() == surface {
		s.seat.NotifyPointerMotion(sx, sy, time)
		return
	}
	s.seat.NotifyPointerEnter(surface, sx, sy)
	if c != nil && c.surface.Kind() != X11Unmanaged {
		s.focusclient(c, false)
	}
}

// focustop returns the first Client in the focus (MRU) list visible on
// m, or nil.
func (s *State) focustop(m *Monitor) *Client {
	if m == nil {
		return nil
	}
	return s.fstack.first(func(c *Client) bool {
		return c.mon == m && visibleOn(c.tags, m)
	})
}

// selclient returns the focus-list head iff it is visible on selmon,
// else nil -- including when fstack is empty.
func (s *State) selclient() *Client {
	c := s.fstack.head
	if c == nil || s.selmon == nil || c.mon != s.selmon || !visibleOn(c.tags, s.selmon) {
		return nil
	}
	return c
}

func (s *State) currentKeyboardKeycodes() []uint32 {
	if s.activeKeyboard == nil {
		return nil
	}
	return s.activeKeyboardKeycodes
}

func (s *State) currentModifiers() ModifierMask {
	if s.activeKeyboard == nil {
		return 0
	}
	return s.activeKeyboard.Modifiers()
}
