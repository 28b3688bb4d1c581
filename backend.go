package wm

import (
	"image"
	"time"

	"gioui.org/f32"
	"github.com/BurntSushi/xgb/xproto"
)

// SurfaceHandle identifies a backend-owned surface (a wl_surface or its
// XWayland equivalent) for the purposes of enter/leave and focus
// comparisons. It is opaque: this package never dereferences it, only
// compares it and hands it back to Seat/Renderer calls.
type SurfaceHandle interface{}

// Texture is an opaque GPU-resident texture handle as produced by the
// renderer for whatever is currently attached to a surface.
type Texture interface{}

// KeyState mirrors a Linux input-event press/release state.
type KeyState int

const (
	KeyReleased KeyState = iota
	KeyPressed
)

// ModifierMask is a bitmask of active keyboard modifiers, shaped after
// the XKB modifier indices (shift, caps, ctrl, alt/mod1, mod2, mod3,
// logo/mod4, mod5).
type ModifierMask uint32

const (
	ModShift ModifierMask = 1 << iota
	ModCapsLock
	ModCtrl
	ModAlt
	ModMod2
	ModMod3
	ModLogo
	ModMod5
)

// Keysym is a resolved keysym, e.g. from XKB's keysyms.h (XK_Return,
// lowercase letters equal their ASCII code).
type Keysym uint32

// A handful of keysyms the binding table (input.go) names directly.
const (
	KeysymReturn Keysym = 0xff0d
	KeysymSpace  Keysym = 0x0020
)

// KeyEvent is a single key press/release as reported by a keyboard
// device, already translated to one keysym (a key may translate to
// several in rare layouts; callers receive one KeyEvent per keysym).
type KeyEvent struct {
	Keycode uint32
	Sym     Keysym
	Mods    ModifierMask
	State   KeyState
	Time    uint32
}

// ButtonEvent is a pointer button press/release.
type ButtonEvent struct {
	Button uint32
	State  KeyState
	Time   uint32
}

// AxisEvent is a scroll/axis event, forwarded to the seat verbatim.
type AxisEvent struct {
	Orientation int
	Delta       float64
	DeltaDiscrete int
	Time        uint32
}

// Keymap is an opaque compiled XKB keymap; compiling one from the
// environment's default rules is the XKB compiler's job (out of scope).
type Keymap interface {
	Translate(keycode uint32) []Keysym
}

// Output is one physical display, as enumerated by the backend.
type Output interface {
	Name() string
	// PreferredMode reports the backend's preferred mode for this
	// output, used when no static rule matches it.
	PreferredMode() (width, height, refreshMHz int, ok bool)
	SetMode(width, height, refreshMHz int) bool
	EnableAdaptiveSync(enable bool)
	Enable(enable bool) bool
	Commit() bool
	Enabled() bool

	OnFrame(fn func(now time.Time))
	OnDestroy(fn func())

	// AttachRender begins a frame; false means the attach failed and the
	// frame must be dropped.
	AttachRender() bool
	End()

	// NotifySurfaceEnter/Leave tell a client's surface it has gained or
	// lost presence on this output (wlr_surface_send_enter/leave).
	NotifySurfaceEnter(surface SurfaceHandle)
	NotifySurfaceLeave(surface SurfaceHandle)
}

// InputDevice is a newly discovered input device; exactly one of
// Keyboard/Pointer is non-nil per IsKeyboard/IsPointer.
type InputDevice interface {
	IsKeyboard() bool
	IsPointer() bool
	Keyboard() Keyboard
	Pointer() Pointer
}

// Keyboard is a keyboard device.
type Keyboard interface {
	SetKeymap(Keymap) error
	SetRepeatInfo(rateHz, delayMs int)
	Modifiers() ModifierMask

	OnModifiers(fn func(ModifierMask))
	OnKey(fn func(KeyEvent))
	OnDestroy(fn func())
}

// Pointer is a pointer device.
type Pointer interface {
	OnMotion(fn func(dx, dy float64, time uint32))
	OnButton(fn func(ButtonEvent))
	OnAxis(fn func(AxisEvent))
	OnFrame(fn func())
	OnDestroy(fn func())
}

// Seat is the toolkit's single input seat (seat0): keyboard/pointer
// focus notifications and the client selection/cursor requests that
// ride along with it.
type Seat interface {
	NotifyKeyboardEnter(surface SurfaceHandle, keycodes []uint32, mods ModifierMask)
	NotifyKeyboardClearFocus()
	NotifyKeyboardKey(keycode uint32, state KeyState, time uint32)
	FocusedKeyboardSurface() SurfaceHandle

	NotifyPointerEnter(surface SurfaceHandle, sx, sy float64)
	NotifyPointerClearFocus()
	NotifyPointerMotion(sx, sy float64, time uint32)
	NotifyPointerButton(ev ButtonEvent)
	NotifyPointerAxis(ev AxisEvent)
	NotifyPointerFrame()
	FocusedPointerSurface() SurfaceHandle

	// CursorRequested reports a client's pending set_cursor request, if
	// any: surface is the image to show, requester is the client
	// surface that asked. The dispatcher honors it only when requester
	// currently holds pointer focus and no drag is in progress (Cursor
	// protocol); otherwise the request is dropped without a call to
	// ApplyCursor.
	CursorRequested() (surface SurfaceHandle, requester SurfaceHandle, ok bool)
	// ApplyCursor commits a cursor image previously returned by
	// CursorRequested as the active pointer cursor.
	ApplyCursor(surface SurfaceHandle)
}

// Renderer performs the opaque GPU operations: clearing an output,
// texturing a quad, and bracketing a frame.
type Renderer interface {
	Clear(r, g, b, a float32)
	RenderTexturedQuad(tex Texture, transform f32.Affine2D, alpha float32)
	Begin(width, height int)
	End()

	// TextureFor fetches whatever GPU texture is currently attached to
	// surface; ok is false if the surface has no current buffer, which
	// the render path must tolerate by skipping it silently.
	TextureFor(surface SurfaceHandle) (tex Texture, ok bool)
	// NotifyFrameDone tells a surface its content was presented this
	// frame, letting the client throttle its own redraw.
	NotifyFrameDone(surface SurfaceHandle, now time.Time)
}

// XdgToplevelHandle is the toolkit's xdg_toplevel-backed surface object.
type XdgToplevelHandle interface {
	RootSurface() SurfaceHandle
	Geometry() image.Rectangle
	AppID() string
	Title() string
	SetSize(x, y, w, h int) (serial uint32)
	SetActivated(active bool)
	Close()
	ForEachSurface(fn func(sub SurfaceHandle, sx, sy int))
	SurfaceAt(cx, cy int) (sub SurfaceHandle, sx, sy int, ok bool)

	OnCommit(fn func(ackedSerial uint32))
	OnMap(fn func())
	OnUnmap(fn func())
	OnDestroy(fn func())
	OnRequestFullscreen(fn func(fullscreen bool))
}

// X11WindowHandle is the XWayland bridge's per-window object, managed or
// unmanaged. Geometry carries whatever the X server last reported.
type X11WindowHandle interface {
	RootSurface() SurfaceHandle
	WindowID() xproto.Window
	OverrideRedirect() bool
	Geometry() image.Rectangle
	SetSize(x, y, w, h int) (serial uint32)
	SetActivated(active bool)
	Close()
	ForEachSurface(fn func(sub SurfaceHandle, sx, sy int))
	SurfaceAt(cx, cy int) (sub SurfaceHandle, sx, sy int, ok bool)

	OnMap(fn func())
	OnUnmap(fn func())
	OnDestroy(fn func())
	OnRequestActivate(fn func())
	OnRequestConfigure(fn func(x, y, w, h int))
}

// XWaylandBridge is the nested X11 server bridge: it starts a nested X
// server, hands new X windows to the compositor, and takes a Seat to
// route input back through.
type XWaylandBridge interface {
	Start() error
	SetSeat(Seat)
	OnReady(fn func(displayName string))
	OnNewSurface(fn func(X11WindowHandle))
	// Stop tears down the nested X server. Called at most once, during
	// shutdown.
	Stop()
}

// Backend enumerates outputs and input devices and drives the display
// loop; its internals (DRM/libinput/X11-window backend selection, ...)
// belong to the concrete backend, not this library.
type Backend interface {
	Start() error
	Destroy()
	OnNewOutput(fn func(Output))
	OnNewInput(fn func(InputDevice))
}

// Shell is the xdg-shell global: it hands new toplevels to the
// compositor as clients request them.
type Shell interface {
	OnNewToplevel(fn func(XdgToplevelHandle))
}

// OutputHead is one entry of a requested output-manager-v1
// configuration.
type OutputHead struct {
	Output                    Output
	Enabled                   bool
	Width, Height, RefreshMHz int
	X, Y                      int
}

// OutputManager is the optional wlr-output-manager-v1 integration. A
// nil OutputManager on State simply skips the reply step.
type OutputManager interface {
	Reply(head OutputHead, succeeded bool)
}

// Display is the toolkit's wl_display handle: socket/global creation and
// the blocking dispatch loop are entirely its responsibility.
type Display interface {
	AddSocketAuto() (socketName string, err error)
	Run() error
	Terminate()
	Destroy()
}
