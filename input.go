package wm

import "image"

// keyBinding is one entry of the static keybinding table: a modifier
// mask, a keysym, and the action to run when both the mask and keysym
// match on a key press. Recognized exactly as listed, no
// user-configurable bindings.
type keyBinding struct {
	Mods ModifierMask
	Sym  Keysym
	Run  func(s *State)
}

var keyBindings = []keyBinding{
	{ModLogo, KeysymReturn, func(s *State) { s.spawn("bemenu-run") }},
	{ModLogo, 'p', func(s *State) { s.spawn("passmenu") }},
	{ModLogo, KeysymSpace, (*State).zoom},
	{ModLogo, 'c', func(s *State) { s.focusstack(1) }},
	{ModLogo, 'h', func(s *State) { s.focusstack(-1) }},
	{ModLogo, 's', func(s *State) { s.focusmon(1) }},
	{ModLogo, 't', func(s *State) { s.focusmon(-1) }},
	{ModLogo, 'i', func(s *State) { s.view(1) }},
	{ModLogo, 'e', func(s *State) { s.view(2) }},
	{ModLogo, 'o', func(s *State) { s.view(4) }},
	{ModLogo, 'n', func(s *State) { s.view(8) }},

	{ModLogo | ModCtrl, KeysymReturn, func(s *State) { s.spawn("alacritty") }},
	{ModLogo | ModCtrl, 'c', (*State).closeSelected},
	{ModLogo | ModCtrl, 's', func(s *State) { s.tagmon(1) }},
	{ModLogo | ModCtrl, 't', func(s *State) { s.tagmon(-1) }},
	{ModLogo | ModCtrl, 'i', func(s *State) { s.tag(1) }},
	{ModLogo | ModCtrl, 'e', func(s *State) { s.tag(2) }},
	{ModLogo | ModCtrl, 'o', func(s *State) { s.tag(4) }},
	{ModLogo | ModCtrl, 'n', func(s *State) { s.tag(8) }},
}

// lookupBinding returns the first binding matching mods and sym exactly.
func lookupBinding(mods ModifierMask, sym Keysym) (keyBinding, bool) {
	for _, b := range keyBindings {
		if b.Mods == mods && b.Sym == sym {
			return b, true
		}
	}
	return keyBinding{}, false
}

// NewKeyboard wires a newly discovered keyboard device:
// install a keymap, set repeat info, and subscribe to key/destroy. It
// does not subscribe to modifier events: bindings are matched against
// the modifiers carried on each KeyEvent, and modifier-only changes are
// not forwarded to the seat. Keymap compilation from the environment's
// default rules is the opaque XKB compiler's job (factory supplied by
// the caller).
func (s *State) NewKeyboard(kb Keyboard, newKeymap func() (Keymap, error)) {
	if newKeymap != nil {
		if km, err := newKeymap(); err == nil {
			kb.SetKeymap(km)
		}
	}
	kb.SetRepeatInfo(25, 220)

	s.activeKeyboard = kb
	pressed := map[uint32]bool{}

	kb.OnKey(func(ev KeyEvent) {
		if ev.State == KeyPressed {
			pressed[ev.Keycode] = true
		} else {
			delete(pressed, ev.Keycode)
		}
		s.activeKeyboardKeycodes = keycodeList(pressed)

		handled := false
		if ev.State == KeyPressed {
			if b, ok := lookupBinding(ev.Mods, ev.Sym); ok {
				b.Run(s)
				handled = true
			}
		}
		if !handled {
			s.seat.NotifyKeyboardKey(ev.Keycode, ev.State, ev.Time)
		}
	})
	kb.OnDestroy(func() {
		if s.activeKeyboard == kb {
			s.activeKeyboard = nil
			s.activeKeyboardKeycodes = nil
		}
	})
}

func keycodeList(pressed map[uint32]bool) []uint32 {
	out := make([]uint32, 0, len(pressed))
	for k := range pressed {
		out = append(out, k)
	}
	return out
}

// --- keybinding actions ---

// view toggles seltags and, if mask != 0, writes it into the new slot;
// a no-op if mask already equals the current visible tagset.
func (s *State) view(mask uint32) {
	if s.selmon == nil {
		return
	}
	m := s.selmon
	if mask == m.tagset[m.seltags] {
		return
	}
	m.seltags ^= 1
	if mask != 0 {
		m.tagset[m.seltags] = mask
	}
	s.Arrange(m)
}

// tag sets the selected client's tags to mask, re-focuses the new top,
// and arranges selmon.
func (s *State) tag(mask uint32) {
	c := s.selclient()
	if c == nil || mask == 0 {
		return
	}
	c.tags = mask
	s.focusclient(s.focustop(s.selmon), true)
	s.Arrange(s.selmon)
}

// tagmon moves the selected client to the monitor in direction dir,
// preserving its tags default (newtags=0 means "inherit target's
// tagset").
func (s *State) tagmon(dir int) {
	c := s.selclient()
	if c == nil {
		return
	}
	target := s.dirtomon(dir)
	if target == nil || target == c.mon {
		return
	}
	s.setmon(c, target, 0)
}

// zoom promotes the selected client to the master slot by moving it to
// the front of the tiling list.
func (s *State) zoom() {
	c := s.selclient()
	if c == nil {
		return
	}
	s.clients.moveFront(c)
	s.Arrange(s.selmon)
}

// focusstack moves keyboard focus to the next (dir>0) or previous
// (dir<0) visible client in tiling order relative to the selected
// client.
func (s *State) focusstack(dir int) {
	c := s.selclient()
	if c == nil {
		c = s.focustop(s.selmon)
		if c == nil {
			return
		}
	}
	order := s.clients.slice()
	var visible []*Client
	for _, cl := range order {
		if cl.mon == s.selmon && visibleOn(cl.tags, s.selmon) {
			visible = append(visible, cl)
		}
	}
	if len(visible) < 2 {
		return
	}
	idx := -1
	for i, cl := range visible {
		if cl == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	next := (idx + dir + len(visible)) % len(visible)
	s.focusclient(visible[next], true)
}

func (s *State) closeSelected() {
	if c := s.selclient(); c != nil {
		c.surface.Close()
	}
}

// ToggleFullscreen implements the "request_fullscreen" event: first
// request installs c as its monitor's fullscreen client (demoting any
// prior one); a second request from the same client clears the slot
// and restores tiling.
func (s *State) ToggleFullscreen(c *Client) {
	if c == nil || c.mon == nil {
		return
	}
	m := c.mon
	if m.fullscreen == c {
		m.fullscreen = nil
	} else {
		m.fullscreen = c
	}
	s.Arrange(m)
}

// --- pointer dispatch ---

const btnSide = 0x113 // Linux input-event BTN_SIDE

// HandlePointerMotion handles relative pointer motion: moves the
// cursor, updates selmon from the hit-tested output, and either
// continues a drag or re-routes pointer focus.
func (s *State) HandlePointerMotion(dx, dy float64, time uint32) {
	s.cursorX += dx
	s.cursorY += dy

	if mon := s.monitorAt(s.cursorX, s.cursorY); mon != nil {
		s.selmon = mon
	}

	if s.dragging && s.dragged != nil {
		bounds := s.sgeom
		x := int(s.cursorX) - s.dragOffX
		y := int(s.cursorY) - s.dragOffY
		r := image.Rect(x, y, x+s.dragged.geom.Dx(), y+s.dragged.geom.Dy())
		s.dragged.geom = applybounds(r, bounds)
		s.dragged.resize = s.dragged.surface.SetSize(s.dragged.geom)
		return
	}

	c, surf, sx, sy, ok := s.hitTest(int(s.cursorX), int(s.cursorY))
	if !ok {
		s.pointerfocus(nil, nil, 0, 0, time)
		return
	}
	s.pointerfocus(c, surf, float64(sx), float64(sy), time)
	s.updateCursor()
}

// updateCursor honors a client's pending set_cursor request only if the
// requester currently holds pointer focus and no drag is in progress;
// otherwise the request is dropped.
func (s *State) updateCursor() {
	if s.dragging {
		return
	}
	surface, requester, ok := s.seat.CursorRequested()
	if !ok || requester != s.seat.FocusedPointerSurface() {
		return
	}
	s.seat.ApplyCursor(surface)
}

// HandlePointerButton handles a pointer button event: BTN_SIDE begins a
// drag on the hit client; any release while dragging ends it and
// reassigns the client to the monitor under the cursor; everything else
// forwards to the seat.
func (s *State) HandlePointerButton(ev ButtonEvent) {
	if ev.Button == btnSide && ev.State == KeyPressed && !s.dragging {
		if c, _, _, _, ok := s.hitTest(int(s.cursorX), int(s.cursorY)); ok && c != nil && c.mon != nil {
			s.focusclient(c, true)
			s.dragged = c
			s.dragging = true
			s.dragOffX = int(s.cursorX) - c.geom.Min.X
			s.dragOffY = int(s.cursorY) - c.geom.Min.Y
		}
		return
	}
	if s.dragging && ev.State == KeyReleased {
		s.dragging = false
		c := s.dragged
		s.dragged = nil
		if c != nil {
			if target := s.monitorAt(s.cursorX, s.cursorY); target != nil && target != c.mon {
				s.setmon(c, target, 0)
			} else if c.mon != nil {
				s.Arrange(c.mon)
			}
		}
		return
	}
	s.seat.NotifyPointerButton(ev)
}

// HandlePointerAxis forwards scroll/axis events verbatim.
func (s *State) HandlePointerAxis(ev AxisEvent) { s.seat.NotifyPointerAxis(ev) }

// HandlePointerFrame forwards a pointer frame event verbatim, then
// re-checks the cursor request in case the focus it depends on changed
// within the same frame.
func (s *State) HandlePointerFrame() {
	s.seat.NotifyPointerFrame()
	s.updateCursor()
}

// monitorAt hit-tests the monitor layout for the output containing
// (x,y), or nil if none does.
func (s *State) monitorAt(x, y float64) *Monitor {
	for _, m := range s.mons {
		if m.position >= 0 && image.Pt(int(x), int(y)).In(m.m) {
			return m
		}
	}
	return nil
}

// hitTest hit-tests independents first (they render on top), then the
// tiled clients list, in stacking order.
func (s *State) hitTest(x, y int) (c *Client, surf SurfaceHandle, sx, sy int, ok bool) {
	var hit *Client
	s.independents.forEach(func(cl *Client) bool {
		if image.Pt(x, y).In(cl.geom) {
			hit = cl
			return false
		}
		return true
	})
	if hit == nil {
		s.stack.forEach(func(cl *Client) bool {
			if cl.mon != nil && visibleOn(cl.tags, cl.mon) && image.Pt(x, y).In(cl.geom) {
				hit = cl
				return false
			}
			return true
		})
	}
	if hit == nil {
		return nil, nil, 0, 0, false
	}
	lx, ly := x-hit.geom.Min.X, y-hit.geom.Min.Y
	if sub, ssx, ssy, ok := hit.surface.SurfaceAt(lx, ly); ok {
		return hit, sub, ssx, ssy, true
	}
	return hit, hit.surface.RootSurface(), lx, ly, true
}
