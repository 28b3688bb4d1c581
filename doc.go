// Package wm implements the tiling window-management core of a Wayland
// compositor: the client/monitor registries, the master-stack layout
// engine, focus/activation tracking, input dispatch and keybindings, and
// the per-output render driver.
//
// The backend (outputs, input devices, buffers), the GPU renderer, the
// XKB keymap compiler, and the nested XWayland bridge are treated as
// opaque collaborators and consumed only through the interfaces in
// backend.go. Nothing in this package talks to a GPU, and the only
// socket it dials is the X11 connection x11util.go opens for window
// title/appid lookups.
package wm
