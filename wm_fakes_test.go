package wm

import (
	"image"
	"image/color"
	"time"

	"gioui.org/f32"
	"golang.org/x/image/draw"
)

// fakeSurface is a minimal Surface double: geometry/appid/title are
// plain fields, SetSize records every call so tests can assert on the
// rectangles Arrange pushes down.
type fakeSurface struct {
	kind  SurfaceKind
	root  SurfaceHandle
	geom  image.Rectangle
	appid string
	title string

	activated bool
	closed    bool
	sizes     []image.Rectangle
}

func newFakeSurface(kind SurfaceKind) *fakeSurface {
	root := new(int)
	return &fakeSurface{kind: kind, root: root}
}

func (f *fakeSurface) Kind() SurfaceKind          { return f.kind }
func (f *fakeSurface) RootSurface() SurfaceHandle { return f.root }
func (f *fakeSurface) Geometry() image.Rectangle  { return f.geom }
func (f *fakeSurface) AppID() string              { return f.appid }
func (f *fakeSurface) Title() string              { return f.title }
func (f *fakeSurface) SetActivated(active bool)   { f.activated = active }
func (f *fakeSurface) Close()                     { f.closed = true }
func (f *fakeSurface) ForEachSurface(fn func(SurfaceHandle, int, int)) {
	fn(f.root, 0, 0)
}
func (f *fakeSurface) SurfaceAt(cx, cy int) (SurfaceHandle, int, int, bool) {
	return f.root, cx, cy, true
}
func (f *fakeSurface) SetSize(r image.Rectangle) uint32 {
	f.geom = r
	f.sizes = append(f.sizes, r)
	return 0
}

// fakeOutput is a minimal Output double: Enable/Commit always succeed
// unless the test overrides enableOK/commitOK.
type fakeOutput struct {
	name                string
	prefW, prefH, prefR int
	havePref            bool

	enabled  bool
	enableOK bool
	commitOK bool
	attachOK bool

	onFrame   func(time.Time)
	onDestroy func()

	entered, left []SurfaceHandle
}

func newFakeOutput(name string) *fakeOutput {
	return &fakeOutput{name: name, enableOK: true, commitOK: true, attachOK: true}
}

func (o *fakeOutput) Name() string { return o.name }
func (o *fakeOutput) PreferredMode() (int, int, int, bool) {
	return o.prefW, o.prefH, o.prefR, o.havePref
}
func (o *fakeOutput) SetMode(w, h, r int) bool       { return true }
func (o *fakeOutput) EnableAdaptiveSync(enable bool) {}
func (o *fakeOutput) Enable(enable bool) bool {
	if !o.enableOK {
		return false
	}
	o.enabled = enable
	return true
}
func (o *fakeOutput) Commit() bool      { return o.commitOK }
func (o *fakeOutput) Enabled() bool     { return o.enabled }
func (o *fakeOutput) OnFrame(fn func(time.Time)) { o.onFrame = fn }
func (o *fakeOutput) OnDestroy(fn func())        { o.onDestroy = fn }
func (o *fakeOutput) AttachRender() bool         { return o.attachOK }
func (o *fakeOutput) End()                       {}
func (o *fakeOutput) NotifySurfaceEnter(s SurfaceHandle) { o.entered = append(o.entered, s) }
func (o *fakeOutput) NotifySurfaceLeave(s SurfaceHandle) { o.left = append(o.left, s) }

// fakeSeat is a minimal Seat double tracking what focus.go/input.go
// tests read back: the currently focused keyboard/pointer surface, the
// events forwarded to it, and the pending/applied cursor requests.
type fakeSeat struct {
	kbFocus  SurfaceHandle
	ptrFocus SurfaceHandle

	keysForwarded []KeyEvent
	buttons       []ButtonEvent
	axes          []AxisEvent
	frames        int
	motions       int

	cursorSurface   SurfaceHandle
	cursorRequester SurfaceHandle
	cursorPending   bool
	appliedCursors  []SurfaceHandle
}

func newFakeSeat() *fakeSeat { return &fakeSeat{} }

func (s *fakeSeat) NotifyKeyboardEnter(surface SurfaceHandle, keycodes []uint32, mods ModifierMask) {
	s.kbFocus = surface
}
func (s *fakeSeat) NotifyKeyboardClearFocus() { s.kbFocus = nil }
func (s *fakeSeat) NotifyKeyboardKey(keycode uint32, state KeyState, time uint32) {
	s.keysForwarded = append(s.keysForwarded, KeyEvent{Keycode: keycode, State: state, Time: time})
}
func (s *fakeSeat) FocusedKeyboardSurface() SurfaceHandle { return s.kbFocus }

func (s *fakeSeat) NotifyPointerEnter(surface SurfaceHandle, sx, sy float64) { s.ptrFocus = surface }
func (s *fakeSeat) NotifyPointerClearFocus()                                 { s.ptrFocus = nil }
func (s *fakeSeat) NotifyPointerMotion(sx, sy float64, time uint32)          { s.motions++ }
func (s *fakeSeat) NotifyPointerButton(ev ButtonEvent)                       { s.buttons = append(s.buttons, ev) }
func (s *fakeSeat) NotifyPointerAxis(ev AxisEvent)                           { s.axes = append(s.axes, ev) }
func (s *fakeSeat) NotifyPointerFrame()                                     { s.frames++ }
func (s *fakeSeat) FocusedPointerSurface() SurfaceHandle                    { return s.ptrFocus }
func (s *fakeSeat) CursorRequested() (SurfaceHandle, SurfaceHandle, bool) {
	return s.cursorSurface, s.cursorRequester, s.cursorPending
}
func (s *fakeSeat) ApplyCursor(surface SurfaceHandle) {
	s.appliedCursors = append(s.appliedCursors, surface)
}

// fakeRenderer is a minimal Renderer double; textures maps a
// SurfaceHandle to a stand-in Texture, letting render_test.go control
// which surfaces are "attached" this frame. When a quad's texture is a
// color.NRGBA, it is additionally composited onto canvas with
// golang.org/x/image/draw, so tests can assert on z-order (which
// surface ends up on top at an overlapping pixel) without a real GPU.
type fakeRenderer struct {
	textures  map[SurfaceHandle]Texture
	quads     int
	cleared   bool
	frameDone []SurfaceHandle
	canvas    *image.RGBA
}

func newFakeRenderer() *fakeRenderer { return &fakeRenderer{textures: map[SurfaceHandle]Texture{}} }

func (r *fakeRenderer) Clear(red, g, b, a float32) { r.cleared = true }
func (r *fakeRenderer) RenderTexturedQuad(tex Texture, transform f32.Affine2D, alpha float32) {
	r.quads++
	col, ok := tex.(color.NRGBA)
	if !ok || r.canvas == nil {
		return
	}
	col.A = uint8(float32(col.A) * alpha)
	origin := transform.Transform(f32.Point{})
	const quadSize = 8
	rect := image.Rect(int(origin.X), int(origin.Y), int(origin.X)+quadSize, int(origin.Y)+quadSize).Intersect(r.canvas.Bounds())
	draw.Draw(r.canvas, rect, image.NewUniform(col), image.Point{}, draw.Over)
}
func (r *fakeRenderer) Begin(width, height int) { r.canvas = image.NewRGBA(image.Rect(0, 0, width, height)) }
func (r *fakeRenderer) End()                    {}
func (r *fakeRenderer) TextureFor(surface SurfaceHandle) (Texture, bool) {
	t, ok := r.textures[surface]
	return t, ok
}
func (r *fakeRenderer) NotifyFrameDone(surface SurfaceHandle, now time.Time) {
	r.frameDone = append(r.frameDone, surface)
}

// fakeKeymap is a trivial Keymap double: every keycode translates to
// the keycode itself as a Keysym, enough to exercise the binding
// table's lowercase-letter bindings in tests.
type fakeKeymap struct{}

func (fakeKeymap) Translate(keycode uint32) []Keysym { return []Keysym{Keysym(keycode)} }

// fakeKeyboard is a minimal Keyboard double.
type fakeKeyboard struct {
	mods       ModifierMask
	repeatRate int
	repeatMs   int
	onKey      func(KeyEvent)
	onDestroy  func()
}

func (k *fakeKeyboard) SetKeymap(Keymap) error { return nil }
func (k *fakeKeyboard) SetRepeatInfo(rateHz, delayMs int) {
	k.repeatRate, k.repeatMs = rateHz, delayMs
}
func (k *fakeKeyboard) Modifiers() ModifierMask      { return k.mods }
func (k *fakeKeyboard) OnModifiers(fn func(ModifierMask)) {}
func (k *fakeKeyboard) OnKey(fn func(KeyEvent))      { k.onKey = fn }
func (k *fakeKeyboard) OnDestroy(fn func())          { k.onDestroy = fn }

// fakeXWaylandBridge is a minimal XWaylandBridge double: Start always
// succeeds, Stop records that it ran.
type fakeXWaylandBridge struct {
	stopped bool
}

func (b *fakeXWaylandBridge) Start() error                         { return nil }
func (b *fakeXWaylandBridge) SetSeat(Seat)                         {}
func (b *fakeXWaylandBridge) OnReady(fn func(displayName string))  {}
func (b *fakeXWaylandBridge) OnNewSurface(fn func(X11WindowHandle)) {}
func (b *fakeXWaylandBridge) Stop()                                 { b.stopped = true }

// fakeBackend is a minimal Backend double; Destroy records that it ran.
type fakeBackend struct {
	destroyed bool
}

func (b *fakeBackend) Start() error                  { return nil }
func (b *fakeBackend) Destroy()                      { b.destroyed = true }
func (b *fakeBackend) OnNewOutput(fn func(Output))    {}
func (b *fakeBackend) OnNewInput(fn func(InputDevice)) {}

// fakeDisplay is a minimal Display double; Terminate/Destroy record
// that they ran.
type fakeDisplay struct {
	terminated, destroyed bool
}

func (d *fakeDisplay) AddSocketAuto() (string, error) { return "wayland-test", nil }
func (d *fakeDisplay) Run() error                     { return nil }
func (d *fakeDisplay) Terminate()                     { d.terminated = true }
func (d *fakeDisplay) Destroy()                        { d.destroyed = true }

// newTestMonitor builds a *Monitor already positioned in the layout
// (position 0) with the given pixel rect, backed by a fakeOutput, ready
// to hand to Arrange/setmon in tests without going through NewOutput's
// backend wiring.
func newTestMonitor(name string, rect image.Rectangle) *Monitor {
	m := newMonitor(newFakeOutput(name))
	m.position = 0
	m.m = rect
	m.w = rect
	return m
}

// newTestState builds a State wired to fake collaborators, with mon (if
// non-nil) registered as selmon and the sole monitor in the ring.
func newTestState(mon *Monitor) *State {
	s := New(nil, newFakeRenderer(), newFakeSeat(), nil, nil, nil, nil)
	if mon != nil {
		s.mons = []*Monitor{mon}
		s.relinkRing()
		s.selmon = mon
	}
	return s
}

// mapClient builds a Client wrapping a fresh tiled fakeSurface, maps it
// via the state's own Map so list membership and setmon run exactly as
// a real xdg_toplevel map would, and returns both.
func mapClient(s *State) (*Client, *fakeSurface) {
	fs := newFakeSurface(XdgToplevel)
	c := s.newClient(fs)
	s.Map(c)
	return c, fs
}
