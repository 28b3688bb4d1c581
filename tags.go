package wm

// NumTags is the number of virtual-desktop tags a monitor's tagset can
// address, named i, e, o, n.
const NumTags = 4

// TagMask covers every defined tag bit.
const TagMask = 1<<NumTags - 1

// TagNames gives each tag bit a short, stable name; TagNames[k] names
// bit (1 << k), matching the i/e/o/n keys of the keybinding table.
var TagNames = [NumTags]string{"i", "e", "o", "n"}

// visibleOn reports whether a client's tags intersect the monitor's
// currently-selected tagset, i.e. whether it should be laid out and
// rendered on m.
func visibleOn(tags uint32, m *Monitor) bool {
	if m == nil {
		return false
	}
	return tags&m.tagset[m.seltags] != 0
}
