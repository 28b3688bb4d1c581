package wm

import "image"

// SurfaceKind is the closed set of backing surface variants a Client can
// wrap. It is the tag of the tagged-variant Surface dispatch below.
type SurfaceKind int

const (
	XdgToplevel SurfaceKind = iota
	X11Managed
	X11Unmanaged
)

func (k SurfaceKind) String() string {
	switch k {
	case XdgToplevel:
		return "xdg_toplevel"
	case X11Managed:
		return "x11_managed"
	case X11Unmanaged:
		return "x11_unmanaged"
	default:
		return "unknown"
	}
}

// Surface is the uniform capability surface every Client is accessed
// through, collapsing the xdg-shell/X11-managed/X11-unmanaged variance
// into one small interface so layout, focus and render never branch on
// "is it X11?" themselves.
type Surface interface {
	Kind() SurfaceKind
	RootSurface() SurfaceHandle
	Geometry() image.Rectangle
	AppID() string
	Title() string
	// SetSize pushes a new layout-relative rectangle to the client. For
	// an XDG toplevel this returns a nonzero configure serial the
	// caller must track until an equal-or-later commit serial arrives;
	// X11 surfaces apply immediately and return 0.
	SetSize(r image.Rectangle) (serial uint32)
	SetActivated(active bool)
	Close()
	ForEachSurface(fn func(sub SurfaceHandle, sx, sy int))
	SurfaceAt(cx, cy int) (sub SurfaceHandle, sx, sy int, ok bool)
}

type xdgSurface struct {
	h XdgToplevelHandle
}

func newXdgSurface(h XdgToplevelHandle) Surface { return xdgSurface{h} }

func (s xdgSurface) Kind() SurfaceKind           { return XdgToplevel }
func (s xdgSurface) RootSurface() SurfaceHandle  { return s.h.RootSurface() }
func (s xdgSurface) Geometry() image.Rectangle   { return s.h.Geometry() }
func (s xdgSurface) AppID() string               { return s.h.AppID() }
func (s xdgSurface) Title() string               { return s.h.Title() }
func (s xdgSurface) SetActivated(active bool)    { s.h.SetActivated(active) }
func (s xdgSurface) Close()                      { s.h.Close() }
func (s xdgSurface) ForEachSurface(fn func(SurfaceHandle, int, int)) {
	s.h.ForEachSurface(fn)
}
func (s xdgSurface) SurfaceAt(cx, cy int) (SurfaceHandle, int, int, bool) {
	return s.h.SurfaceAt(cx, cy)
}
func (s xdgSurface) SetSize(r image.Rectangle) uint32 {
	return s.h.SetSize(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// x11Surface is shared by the managed and unmanaged variants: both wrap
// an X11WindowHandle and differ in tag and list membership, in whether
// they ever take keyboard focus, and in that the unmanaged variant has
// no x11Context, so its title/appid are always "".
type x11Surface struct {
	h  X11WindowHandle
	xu *x11Context // nil-safe; title/appid best-effort when unset
}

func newX11ManagedSurface(h X11WindowHandle, xu *x11Context) Surface {
	return x11Surface{h: h, xu: xu}
}

func newX11UnmanagedSurface(h X11WindowHandle) Surface {
	return x11Surface{h: h}
}

func (s x11Surface) Kind() SurfaceKind {
	if s.h.OverrideRedirect() {
		return X11Unmanaged
	}
	return X11Managed
}
func (s x11Surface) RootSurface() SurfaceHandle { return s.h.RootSurface() }
func (s x11Surface) Geometry() image.Rectangle  { return s.h.Geometry() }
func (s x11Surface) AppID() string              { return x11AppID(s.xu, s.h.WindowID()) }
func (s x11Surface) Title() string              { return x11Title(s.xu, s.h.WindowID()) }
func (s x11Surface) SetActivated(active bool)   { s.h.SetActivated(active) }
func (s x11Surface) Close()                     { s.h.Close() }
func (s x11Surface) ForEachSurface(fn func(SurfaceHandle, int, int)) {
	s.h.ForEachSurface(fn)
}
func (s x11Surface) SurfaceAt(cx, cy int) (SurfaceHandle, int, int, bool) {
	return s.h.SurfaceAt(cx, cy)
}
func (s x11Surface) SetSize(r image.Rectangle) uint32 {
	return s.h.SetSize(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// isFloatingAppID reports whether an appid forces floating placement
// regardless of the layout engine's tiling count -- the sole per-client
// rule this compositor implements.
func isFloatingAppID(appid string) bool {
	return appid == "floating" || appid == "gcr-prompter"
}
