package wm

import (
	"image"
	"log"
	"time"
)

// OutputRule is one entry of the static monitor rule table:
// keyed by the backend-reported output name, it picks a preferred mode
// and a layout position at monitor-creation time only.
type OutputRule struct {
	Name                      string
	X, Y                      int
	Width, Height, RefreshMHz int
}

// Monitor is one physical output.
type Monitor struct {
	output Output

	m, w image.Rectangle // physical rect and usable rect; equal here

	tagset  [2]uint32
	seltags int // index into tagset, toggled by view()

	position   int // ring position; -1 means no rule matched
	fullscreen *Client

	next, prev *Monitor // ring links, rebuilt by the registry on change
}

func newMonitor(out Output) *Monitor {
	mon := &Monitor{output: out, position: -1}
	mon.tagset[0] = 1
	mon.tagset[1] = 1
	return mon
}

func (m *Monitor) enterSurface(s Surface) { m.output.NotifySurfaceEnter(s.RootSurface()) }
func (m *Monitor) leaveSurface(s Surface) { m.output.NotifySurfaceLeave(s.RootSurface()) }

// matchRule returns the rule for name, or ok=false if none matches.
func matchRule(rules []OutputRule, name string) (OutputRule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}
	return OutputRule{}, false
}

// NewOutput handles the backend's "new output" event: allocate the
// Monitor, pick a mode, optionally add it to the layout, and recompute
// sgeom.
func (s *State) NewOutput(out Output) *Monitor {
	mon := newMonitor(out)

	rule, hasRule := matchRule(s.rules, out.Name())
	w, h, refresh := rule.Width, rule.Height, rule.RefreshMHz
	if !hasRule || w == 0 || h == 0 {
		if pw, ph, pr, ok := out.PreferredMode(); ok {
			w, h, refresh = pw, ph, pr
		}
	}
	out.SetMode(w, h, refresh)
	out.EnableAdaptiveSync(true)

	out.OnFrame(func(now time.Time) { s.RenderOutput(mon, now) })
	out.OnDestroy(func() { s.DestroyMonitor(mon) })

	committed := out.Enable(true) && out.Commit()

	// position stays -1 ("no rule matched") unless a rule matched AND the
	// output actually came up; either failure mode is treated identically
	// by focus rotation and layout-adding.
	if hasRule && committed {
		mon.position = len(s.mons)
	}

	s.insertMonitor(mon)

	if hasRule && committed {
		mon.m = image.Rect(rule.X, rule.Y, rule.X+rule.Width, rule.Y+rule.Height)
		mon.w = mon.m
		s.refreshSgeom()
	}

	if s.selmon == nil {
		s.selmon = mon
	}
	return mon
}

// insertMonitor keeps s.mons ordered by position and rebuilds the ring
// links used by dirtomon.
func (s *State) insertMonitor(mon *Monitor) {
	i := 0
	for ; i < len(s.mons); i++ {
		if s.mons[i].position > mon.position {
			break
		}
	}
	s.mons = append(s.mons, nil)
	copy(s.mons[i+1:], s.mons[i:])
	s.mons[i] = mon
	s.relinkRing()
}

func (s *State) relinkRing() {
	n := len(s.mons)
	for i, mon := range s.mons {
		mon.next = s.mons[(i+1)%n]
		mon.prev = s.mons[(i-1+n)%n]
	}
}

func (s *State) refreshSgeom() {
	var have bool
	var r image.Rectangle
	for _, mon := range s.mons {
		if mon.position < 0 {
			continue
		}
		r = unionRect(r, mon.m, have)
		have = true
	}
	s.sgeom = r
}

// DestroyMonitor handles the backend's "destroy" event for an output:
// removes it from the layout and ring, migrates its clients to the new
// selmon, and rotates selmon to an enabled output.
func (s *State) DestroyMonitor(mon *Monitor) {
	idx := -1
	for i, m := range s.mons {
		if m == mon {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	s.mons = append(s.mons[:idx], s.mons[idx+1:]...)
	s.relinkRing()
	s.refreshSgeom()

	if s.selmon == mon {
		s.selmon = nil
		for hops, cand := 0, mon.prev; hops < len(s.mons)+1 && cand != nil && cand != mon; hops++ {
			if cand.position >= 0 {
				s.selmon = cand
				break
			}
			cand = cand.prev
		}
		if s.selmon == nil && len(s.mons) > 0 {
			s.selmon = s.mons[0]
		}
	}

	s.clients.forEach(func(c *Client) bool {
		if c.mon == mon {
			tags := c.tags
			c.mon = nil
			s.setmon(c, s.selmon, tags)
		}
		return true
	})
}

// dirtomon returns the next monitor in ring order for dir > 0, or the
// previous for dir < 0, relative to selmon.
func (s *State) dirtomon(dir int) *Monitor {
	if s.selmon == nil || len(s.mons) == 0 {
		return s.selmon
	}
	if dir > 0 {
		return s.selmon.next
	}
	return s.selmon.prev
}

// focusmon rotates selmon in direction dir until it lands on an enabled
// (laid-out) output, bounded by the ring length.
func (s *State) focusmon(dir int) {
	if len(s.mons) == 0 {
		return
	}
	cand := s.selmon
	for hops := 0; hops < len(s.mons); hops++ {
		cand = s.dirtomonFrom(cand, dir)
		if cand.position >= 0 {
			break
		}
	}
	s.selmon = cand
	s.focusclient(s.focustop(s.selmon), true)
}

func (s *State) dirtomonFrom(from *Monitor, dir int) *Monitor {
	if from == nil {
		return nil
	}
	if dir > 0 {
		return from.next
	}
	return from.prev
}

// ApplyOutputConfig implements the output-manager-v1 "apply" request:
// toggles/moves/resizes each requested head, commits, and replies
// succeeded/failed per head. Disabling every enabled output is refused
// outright (no-op, no replies) rather than leaving the compositor with
// zero displays.
func (s *State) ApplyOutputConfig(heads []OutputHead) {
	if allDisabling(heads, s.mons) {
		return
	}

	anySucceeded := false
	var applied []OutputHead
	for _, h := range heads {
		ok := h.Output.Enable(h.Enabled)
		if ok && h.Enabled {
			if h.Width > 0 && h.Height > 0 {
				ok = h.Output.SetMode(h.Width, h.Height, h.RefreshMHz)
			}
		}
		if ok {
			ok = h.Output.Commit()
		}
		if ok {
			anySucceeded = true
			applied = append(applied, h)
		} else {
			log.Printf("wm: output %s: apply config failed", h.Output.Name())
		}
		if s.OutputManager != nil {
			s.OutputManager.Reply(h, ok)
		}
	}

	if anySucceeded {
		for _, h := range applied {
			if !h.Enabled {
				continue
			}
			mon := monitorForOutput(s.mons, h.Output)
			if mon == nil || mon.position < 0 {
				continue
			}
			w, ht := h.Width, h.Height
			if w <= 0 || ht <= 0 {
				w, ht = mon.m.Dx(), mon.m.Dy()
			}
			mon.m = image.Rect(h.X, h.Y, h.X+w, h.Y+ht)
			mon.w = mon.m
		}
		s.refreshSgeom()
		for _, mon := range s.mons {
			s.Arrange(mon)
		}
	}
}

// monitorForOutput returns the Monitor backed by out, or nil.
func monitorForOutput(mons []*Monitor, out Output) *Monitor {
	for _, mon := range mons {
		if mon.output == out {
			return mon
		}
	}
	return nil
}

// allDisabling reports whether heads would disable every currently
// enabled output, which must be refused outright.
func allDisabling(heads []OutputHead, mons []*Monitor) bool {
	enabledAfter := map[Output]bool{}
	for _, mon := range mons {
		enabledAfter[mon.output] = mon.output.Enabled()
	}
	for _, h := range heads {
		enabledAfter[h.Output] = h.Enabled
	}
	for _, enabled := range enabledAfter {
		if enabled {
			return false
		}
	}
	return len(enabledAfter) > 0
}
