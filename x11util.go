package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// x11Context wraps the xgbutil connection used only for best-effort
// property lookups (title/appid) on XWayland-managed windows. The
// nested X server session itself is the opaque XWaylandBridge; this is
// a second, ordinary X11 client connection used purely to read EWMH/
// ICCCM properties, the way noisetorch and marwind read window
// properties with xgbutil/xgb.
type x11Context struct {
	xu *xgbutil.XUtil
}

// newX11Context connects to the DISPLAY the XWayland bridge published.
// A failure here is tolerated: title()/appid() simply fall back to "".
func newX11Context(display string) *x11Context {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil
	}
	return &x11Context{xu: xu}
}

func (c *x11Context) conn() *x11Context {
	if c == nil || c.xu == nil {
		return nil
	}
	return c
}

// x11Title resolves _NET_WM_NAME, falling back to WM_NAME, then "".
func x11Title(c *x11Context, w xproto.Window) string {
	c = c.conn()
	if c == nil {
		return ""
	}
	if name, err := ewmh.WmNameGet(c.xu, w); err == nil && name != "" {
		return name
	}
	if name, err := icccm.WmNameGet(c.xu, w); err == nil && name != "" {
		return name
	}
	return ""
}

// x11AppID resolves WM_CLASS's instance name, the closest X11 analogue
// of a Wayland appid.
func x11AppID(c *x11Context, w xproto.Window) string {
	c = c.conn()
	if c == nil {
		return ""
	}
	class, err := icccm.WmClassGet(c.xu, w)
	if err != nil || class == nil {
		return ""
	}
	if class.Instance != "" {
		return class.Instance
	}
	return class.Class
}
