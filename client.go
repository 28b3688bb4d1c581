package wm

import "image"

// ClientID is a stable identifier for a Client, used instead of a raw
// pointer anywhere an id rather than a reference is clearer (e.g. test
// output).
type ClientID uint64

// listKind selects one of the four link pairs embedded in every Client:
// tiling order, focus (MRU) order, stacking z-order, and the X11
// override-redirect independents list. A Client only ever belongs to
// listTiling+listFocus+listStack together, or to listIndependents
// alone, never both.
type listKind int

const (
	listTiling listKind = iota
	listFocus
	listStack
	listIndependents
	numLists
)

type listLink struct {
	prev, next *Client
	member     bool
}

// Client represents one top-level window, Wayland or X11-backed.
type Client struct {
	id      ClientID
	surface Surface
	geom    image.Rectangle
	mon     *Monitor
	tags    uint32
	resize  uint32 // pending XDG configure serial; 0 when none outstanding

	links [numLists]listLink
}

func (c *Client) Kind() SurfaceKind { return c.surface.Kind() }

// clientList is an intrusive doubly-linked list threaded through the
// link pair selected by kind inside each Client record. Push/remove/moveFront are O(1); no slice
// reallocation or linear scan is needed to reorder on focus or unmap.
type clientList struct {
	kind       listKind
	head, tail *Client
	len        int
}

func (l *clientList) pushFront(c *Client) {
	if c.links[l.kind].member {
		return
	}
	c.links[l.kind] = listLink{prev: nil, next: l.head, member: true}
	if l.head != nil {
		l.head.links[l.kind].prev = c
	}
	l.head = c
	if l.tail == nil {
		l.tail = c
	}
	l.len++
}

func (l *clientList) remove(c *Client) {
	ln := c.links[l.kind]
	if !ln.member {
		return
	}
	if ln.prev != nil {
		ln.prev.links[l.kind].next = ln.next
	} else if l.head == c {
		l.head = ln.next
	}
	if ln.next != nil {
		ln.next.links[l.kind].prev = ln.prev
	} else if l.tail == c {
		l.tail = ln.prev
	}
	c.links[l.kind] = listLink{}
	l.len--
}

func (l *clientList) moveFront(c *Client) {
	if l.head == c {
		return
	}
	l.remove(c)
	l.pushFront(c)
}

func (l *clientList) contains(c *Client) bool {
	return c != nil && c.links[l.kind].member
}

// forEach walks the list front to back, stopping early if fn returns
// false.
func (l *clientList) forEach(fn func(*Client) bool) {
	for c := l.head; c != nil; {
		next := c.links[l.kind].next
		if !fn(c) {
			return
		}
		c = next
	}
}

// first returns the first client in the list matching pred, or nil.
func (l *clientList) first(pred func(*Client) bool) *Client {
	var found *Client
	l.forEach(func(c *Client) bool {
		if pred == nil || pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

func (l *clientList) slice() []*Client {
	out := make([]*Client, 0, l.len)
	l.forEach(func(c *Client) bool { out = append(out, c); return true })
	return out
}

// newClient allocates a Client record for a newly created surface. It is
// not yet a member of any list; Map inserts it.
func (s *State) newClient(surf Surface) *Client {
	s.nextClientID++
	return &Client{id: s.nextClientID, surface: surf}
}

// Map is called on the backing shell's "map" event: the surface has an
// initial buffer and becomes visible.
func (s *State) Map(c *Client) {
	if c.surface.Kind() == X11Unmanaged {
		c.geom = c.surface.Geometry()
		s.independents.pushFront(c)
		return
	}
	s.clients.pushFront(c)
	s.fstack.pushFront(c)
	s.stack.pushFront(c)
	c.geom = c.surface.Geometry()
	s.setmon(c, s.selmon, 0)
}

// Unmap is called on "unmap": the surface is hidden but not yet
// destroyed.
func (s *State) Unmap(c *Client) {
	if c.surface.Kind() == X11Unmanaged {
		s.independents.remove(c)
		return
	}
	s.setmon(c, nil, 0)
	s.fstack.remove(c)
	s.stack.remove(c)
	s.clients.remove(c)
}

// Destroy frees bookkeeping for a Client after all of the backing
// surface's listeners have been detached. Safe to call after Unmap, and
// idempotent with respect to list membership.
func (s *State) Destroy(c *Client) {
	s.clients.remove(c)
	s.fstack.remove(c)
	s.stack.remove(c)
	s.independents.remove(c)
	if s.dragged == c {
		s.dragged = nil
		s.dragging = false
	}
}

// setmon is the core relocation primitive: it moves c
// from its current monitor (possibly nil) to m (possibly nil),
// re-arranging both endpoints and clearing/installing the fullscreen
// slot as needed. Tolerant of nil old/new monitor; a no-op when m
// already equals c.mon.
func (s *State) setmon(c *Client, m *Monitor, newtags uint32) {
	if c.mon == m {
		return
	}
	old := c.mon
	wasFullscreen := old != nil && old.fullscreen == c

	c.mon = m

	if old != nil {
		if wasFullscreen {
			old.fullscreen = nil
		}
		old.leaveSurface(c.surface)
		s.Arrange(old)
	}

	if m != nil {
		c.geom = applybounds(c.geom, m.m)
		m.enterSurface(c.surface)
		if newtags != 0 {
			c.tags = newtags
		} else {
			c.tags = m.tagset[m.seltags]
		}
		if wasFullscreen {
			if m.fullscreen != nil && m.fullscreen != c {
				m.fullscreen = nil
			}
			m.fullscreen = c
		}
		s.Arrange(m)
	}

	s.focusclient(s.focustop(s.selmon), true)
}
