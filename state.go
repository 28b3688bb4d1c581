package wm

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/meutraa/wm/wire"
)

// State is the single record threading every process-wide singleton
// through event callbacks:
// there are no package-level globals, only fields on *State passed to
// whichever closures the backend/shell/seat invoke.
type State struct {
	backend  Backend
	renderer Renderer
	seat     Seat
	shell    Shell
	xwayland XWaylandBridge
	display  Display

	// OutputManager is the optional wlr-output-manager-v1 integration
	// nil simply skips the reply step.
	OutputManager OutputManager

	rules []OutputRule

	mons   []*Monitor
	selmon *Monitor
	sgeom  image.Rectangle

	clients      clientList
	fstack       clientList
	stack        clientList
	independents clientList

	dragged            *Client
	dragging           bool
	dragOffX, dragOffY int
	cursorX, cursorY   float64

	activeKeyboard         Keyboard
	activeKeyboardKeycodes []uint32

	nextClientID ClientID
	x11          *x11Context
}

// New constructs a State with its collaborators and static rule tables.
// None of backend/renderer/seat/shell are started yet; call Setup then
// Run.
func New(backend Backend, renderer Renderer, seat Seat, shell Shell, xwayland XWaylandBridge, display Display, rules []OutputRule) *State {
	s := &State{
		backend:  backend,
		renderer: renderer,
		seat:     seat,
		shell:    shell,
		xwayland: xwayland,
		display:  display,
		rules:    rules,
	}
	s.clients = clientList{kind: listTiling}
	s.fstack = clientList{kind: listFocus}
	s.stack = clientList{kind: listStack}
	s.independents = clientList{kind: listIndependents}
	return s
}

// DefaultOutputRules is the static monitor rule table:
// populated by a real deployment's cmd/wm with the names of its known
// outputs; empty here since this library carries no hardware-specific
// defaults.
var DefaultOutputRules []OutputRule

// Setup performs the startup sequence: requires
// XDG_RUNTIME_DIR, installs the SIGCHLD reaper, wires backend/shell/
// seat/xwayland callbacks, publishes the socket, and starts the
// backend. It does not block; call Run afterwards.
func (s *State) Setup(newKeymap func() (Keymap, error)) error {
	if os.Getenv("XDG_RUNTIME_DIR") == "" {
		return fmt.Errorf("XDG_RUNTIME_DIR is not defined in env")
	}

	wire.WatchChildren()

	s.backend.OnNewOutput(func(out Output) { s.NewOutput(out) })
	s.backend.OnNewInput(func(dev InputDevice) {
		if dev.IsKeyboard() {
			s.NewKeyboard(dev.Keyboard(), newKeymap)
		}
		if dev.IsPointer() {
			s.wirePointer(dev.Pointer())
		}
	})

	if s.shell != nil {
		s.shell.OnNewToplevel(func(h XdgToplevelHandle) { s.wireXdgToplevel(h) })
	}

	if s.xwayland != nil {
		s.xwayland.SetSeat(s.seat)
		s.xwayland.OnReady(func(displayName string) {
			os.Setenv("DISPLAY", displayName)
			s.x11 = newX11Context(displayName)
		})
		s.xwayland.OnNewSurface(func(h X11WindowHandle) { s.wireX11Window(h) })
		if err := s.xwayland.Start(); err != nil {
			log.Printf("wm: xwayland unavailable, continuing Wayland-only: %v", err)
			s.xwayland = nil
		}
	}

	socketName, err := s.display.AddSocketAuto()
	if err != nil {
		return fmt.Errorf("add wayland socket: %w", err)
	}
	os.Setenv("WAYLAND_DISPLAY", socketName)

	if err := s.backend.Start(); err != nil {
		return fmt.Errorf("start backend: %w", err)
	}

	if mon := s.monitorAt(s.cursorX, s.cursorY); mon != nil {
		s.selmon = mon
	} else if len(s.mons) > 0 {
		s.selmon = s.mons[0]
	}

	return nil
}

// Run blocks on the display's event loop; the single suspension point
// in the whole compositor.
func (s *State) Run() error {
	return s.display.Run()
}

// Shutdown tears down process-wide state in reverse dependency order.
func (s *State) Shutdown() {
	if s.xwayland != nil {
		s.xwayland.Stop()
	}
	s.clients.forEach(func(c *Client) bool { c.surface.Close(); return true })
	s.independents.forEach(func(c *Client) bool { c.surface.Close(); return true })
	s.backend.Destroy()
	s.display.Terminate()
	s.display.Destroy()
}

func (s *State) wirePointer(p Pointer) {
	p.OnMotion(func(dx, dy float64, time uint32) { s.HandlePointerMotion(dx, dy, time) })
	p.OnButton(func(ev ButtonEvent) { s.HandlePointerButton(ev) })
	p.OnAxis(func(ev AxisEvent) { s.HandlePointerAxis(ev) })
	p.OnFrame(func() { s.HandlePointerFrame() })
}

// wireXdgToplevel subscribes to a new XDG toplevel's lifecycle events:
// commit, map, unmap, destroy, request_fullscreen.
func (s *State) wireXdgToplevel(h XdgToplevelHandle) {
	c := s.newClient(newXdgSurface(h))

	h.OnCommit(func(acked uint32) {
		if c.resize != 0 && acked >= c.resize {
			c.resize = 0
		}
	})
	h.OnMap(func() { s.Map(c) })
	h.OnUnmap(func() { s.Unmap(c) })
	h.OnDestroy(func() { s.Destroy(c) })
	h.OnRequestFullscreen(func(bool) { s.ToggleFullscreen(c) })
}

// wireX11Window classifies a new X11 surface by its override_redirect
// hint ("set-then-forget" ⇒ X11Unmanaged) and
// subscribes the appropriate event set.
func (s *State) wireX11Window(h X11WindowHandle) {
	if h.OverrideRedirect() {
		c := s.newClient(newX11UnmanagedSurface(h))
		h.OnMap(func() { s.Map(c) })
		h.OnUnmap(func() { s.Unmap(c) })
		h.OnDestroy(func() { s.Destroy(c) })
		return
	}

	c := s.newClient(newX11ManagedSurface(h, s.x11))
	h.OnMap(func() { s.Map(c) })
	h.OnUnmap(func() { s.Unmap(c) })
	h.OnDestroy(func() { s.Destroy(c) })
	h.OnRequestActivate(func() { s.focusclient(c, true) })
	h.OnRequestConfigure(func(x, y, w, ht int) {
		if c.mon == nil {
			c.geom = image.Rect(x, y, x+w, y+ht)
		}
	})
}
