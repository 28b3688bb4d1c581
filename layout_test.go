package wm

import (
	"image"
	"testing"
)

// Two tiled clients on a 1920x1080 monitor: the most recently mapped
// client takes the master slot (left half, full height) and the other
// takes the stack slot (right half, full height) -- new clients attach
// at the tiling list's head.
func TestArrangeTwoTiledClients(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1080))
	s := newTestState(mon)

	_, fa := mapClient(s)
	_, fb := mapClient(s)

	wantMaster := image.Rect(0, 0, 960, 1080)
	wantStack := image.Rect(960, 0, 1920, 1080)
	if fb.geom != wantMaster {
		t.Fatalf("master (most recently mapped) geom = %v, want %v", fb.geom, wantMaster)
	}
	if fa.geom != wantStack {
		t.Fatalf("stack geom = %v, want %v", fa.geom, wantStack)
	}
}

// zoom() promotes the selected client to master by moving it to the
// front of the tiling list, swapping the two rectangles.
func TestZoomSwapsMasterAndStack(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1080))
	s := newTestState(mon)

	a, fa := mapClient(s)
	_, fb := mapClient(s)

	// b landed in master on map; lift a to focus-list head so
	// selclient() picks it, then zoom should promote it back to master.
	s.focusclient(a, true)
	s.zoom()

	wantMaster := image.Rect(0, 0, 960, 1080)
	wantStack := image.Rect(960, 0, 1920, 1080)
	if fa.geom != wantMaster {
		t.Fatalf("zoomed client geom = %v, want master rect %v", fa.geom, wantMaster)
	}
	if fb.geom != wantStack {
		t.Fatalf("demoted client geom = %v, want stack rect %v", fb.geom, wantStack)
	}
}

// Three tiled clients: stack height divides across the two non-master
// clients, with any floor-division remainder landing on the last slot.
// Mapping order a, b, c puts c (most recent) in master.
func TestArrangeThreeTiledClientsStackSplit(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1001))
	s := newTestState(mon)

	_, fa := mapClient(s)
	_, fb := mapClient(s)
	_, fc := mapClient(s)

	if fc.geom != image.Rect(0, 0, 960, 1001) {
		t.Fatalf("master geom = %v", fc.geom)
	}
	// stack order is b then a (b mapped more recently than a); n=3,
	// i=1 -> h=(1001-0)/2=500; i=2 -> h=(1001-500)/1=501
	if fb.geom != image.Rect(960, 0, 1920, 500) {
		t.Fatalf("first stack slot = %v", fb.geom)
	}
	if fa.geom != image.Rect(960, 500, 1920, 1001) {
		t.Fatalf("second stack slot (remainder) = %v", fa.geom)
	}
}

// A single tiled client fills the whole usable rect.
func TestArrangeSingleClientFillsMonitor(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1080))
	s := newTestState(mon)

	_, fa := mapClient(s)

	if fa.geom != mon.w {
		t.Fatalf("sole tiled client geom = %v, want %v", fa.geom, mon.w)
	}
}

// Zero tiled clients (e.g. everything floating or nothing mapped) is a
// no-op: Arrange must not panic and must not touch mon.fullscreen.
func TestArrangeNoopWithZeroTiledClients(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1080))
	s := newTestState(mon)
	s.Arrange(mon)
	if mon.fullscreen != nil {
		t.Fatalf("no-op arrange set a fullscreen client out of nowhere")
	}
}

// "Idempotence of arrange": calling Arrange twice in a row with no
// intervening state change produces byte-identical rectangles.
func TestArrangeIsIdempotent(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1080))
	s := newTestState(mon)
	_, fa := mapClient(s)
	_, fb := mapClient(s)

	first := []image.Rectangle{fa.geom, fb.geom}
	s.Arrange(mon)
	second := []image.Rectangle{fa.geom, fb.geom}

	if first[0] != second[0] || first[1] != second[1] {
		t.Fatalf("arrange not idempotent: first %v second %v", first, second)
	}
}

// A client whose appid marks it floating is centered at the fixed
// 640x480 default rect instead of joining the tiling split.
func TestArrangePlacesFloatingOverrideClientCentered(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1080))
	s := newTestState(mon)

	fs := newFakeSurface(XdgToplevel)
	fs.appid = "floating"
	c := s.newClient(fs)
	s.Map(c)

	want := image.Rect((1920-640)/2, (1080-480)/2, (1920-640)/2+640, (1080-480)/2+480)
	if fs.geom != want {
		t.Fatalf("floating geom = %v, want %v", fs.geom, want)
	}
}

// Fullscreen short-circuits the tiling split entirely: the fullscreen
// client fills the whole monitor rect and nothing else is touched.
func TestArrangeFullscreenFillsMonitor(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1080))
	s := newTestState(mon)
	c, fc := mapClient(s)
	mon.fullscreen = c

	s.Arrange(mon)

	if fc.geom != mon.m {
		t.Fatalf("fullscreen client geom = %v, want %v", fc.geom, mon.m)
	}
}

// A client on a tag not currently visible on its monitor is excluded
// from the tiled count entirely.
func TestArrangeExcludesClientsOnHiddenTags(t *testing.T) {
	mon := newTestMonitor("eDP-1", image.Rect(0, 0, 1920, 1080))
	s := newTestState(mon)
	mon.tagset[mon.seltags] = 1 // tag "i" only

	_, fa := mapClient(s)
	b, fb := mapClient(s)
	staleGeom := fb.geom

	b.tags = 2 // tag "e", not visible
	s.Arrange(mon)

	if fa.geom != mon.w {
		t.Fatalf("sole visible client should fill the monitor, got %v", fa.geom)
	}
	if fb.geom != staleGeom {
		t.Fatalf("hidden client's geometry should be untouched by arrange: got %v, want unchanged %v", fb.geom, staleGeom)
	}
}
