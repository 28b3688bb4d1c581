// Command wm is the compositor's composition root. The wm library
// (github.com/meutraa/wm) implements the tiling/focus/input/render
// logic against the Backend, Renderer, Seat, Shell, XWaylandBridge and
// Display interfaces; this binary is where a real deployment would
// construct concrete implementations of those (a wlroots-style
// backend, a GPU renderer, an XKB keymap compiler, ...) and hand them
// to wm.New. None of that is built here, so main fails fast rather
// than pretending to be a full binary.
package main

import (
	"log"
	"os"

	"github.com/meutraa/wm"
)

func main() {
	log.SetFlags(0)

	backend, renderer, seat, shell, xwayland, display, keymap, err := buildCollaborators()
	if err != nil {
		log.Fatalf("wm: %v", err)
	}

	s := wm.New(backend, renderer, seat, shell, xwayland, display, wm.DefaultOutputRules)
	if err := s.Setup(keymap); err != nil {
		log.Fatalf("wm: %v", err)
	}
	defer s.Shutdown()

	if err := s.Run(); err != nil {
		log.Fatalf("wm: %v", err)
	}
	os.Exit(0)
}

// buildCollaborators is the seam a real deployment fills in. Left
// unimplemented here: the backend/renderer/XKB compiler/XWayland bridge
// are opaque external collaborators, not something this
// repository provides concrete implementations of.
func buildCollaborators() (wm.Backend, wm.Renderer, wm.Seat, wm.Shell, wm.XWaylandBridge, wm.Display, func() (wm.Keymap, error), error) {
	return nil, nil, nil, nil, nil, nil, nil, errNoCollaborators
}

var errNoCollaborators = &collaboratorError{}

type collaboratorError struct{}

func (*collaboratorError) Error() string {
	return "no backend/renderer/seat/shell/display wired up; see cmd/wm/main.go"
}
