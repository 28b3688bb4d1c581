// Package wire holds small, toolkit-agnostic plumbing used by the
// compositor's event-wiring lifecycle: a synchronous round-trip helper
// and the SIGCHLD reaper. It deliberately does not
// speak the Wayland wire protocol itself -- object/socket ownership
// belongs to whichever Display/Backend the caller wires in.
package wire

// Roundtrip blocks until the request issued by issue has been observed
// complete (whether issue calls done before or after it returns),
// mirroring the done-channel-fed-by-a-completion-callback
// shape of a synchronous display round trip (the same idiom as
// wl_display_roundtrip: queue a request, wait for its callback before
// continuing).
func Roundtrip(issue func(done func())) {
	done := make(chan struct{}, 1)
	issue(func() { done <- struct{}{} })
	<-done
}
