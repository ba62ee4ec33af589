package modui

import (
	"testing"
	"time"
)

var inputEpoch = time.Unix(1000, 0)

// inputFixture builds a resolved surface:
//
//	button "ok"       (10,10)-(110,50)
//	scroll "list"     (200,0)-(300,100), content 250 tall (overflow 150)
//	button "buried"   child of the scroll, below its viewport
//	draggable "dragArea" (0,150)-(150,300) with a 50x50 "handle"
//	button "inner"    child of the draggable, (10,160)-(50,180)
func inputFixture(t *testing.T) (*Surface, *InputHandler, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	s := NewSurface("stack", 400, 300, sink)
	err := s.HandleInitJSON([]byte(`[
		{"type": "button", "name": "ok", "parentNode": "/", "position": [10, 10], "size": [100, 40]},
		{"type": "scroll", "name": "list", "parentNode": "/", "position": [200, 0], "size": [100, 100], "contentSize": ["100%", "250"]},
		{"type": "button", "name": "buried", "parentNode": "list", "position": [0, 120], "size": [50, 30]},
		{"type": "draggable", "name": "dragArea", "parentNode": "/", "position": [0, 150], "size": [150, 150], "draggableNode": "handle"},
		{"type": "panel", "name": "handle", "parentNode": "dragArea", "size": [50, 50]},
		{"type": "button", "name": "inner", "parentNode": "dragArea", "position": [10, 10], "size": [40, 20]}
	]`), inputEpoch)
	if err != nil {
		t.Fatal(err)
	}
	s.Update(inputEpoch)
	return s, NewInputHandler(s), sink
}

// --- Buttons ---

func TestButtonHover(t *testing.T) {
	s, h, _ := inputFixture(t)
	btn := s.Tree().FindByName("ok")

	h.PointerMove(50, 30, inputEpoch)
	if !btn.Hovered {
		t.Error("cursor over the button should hover it")
	}
	h.PointerMove(150, 30, inputEpoch)
	if btn.Hovered {
		t.Error("cursor off the button should clear hover")
	}
}

func TestButtonPressAndClick(t *testing.T) {
	s, h, sink := inputFixture(t)
	btn := s.Tree().FindByName("ok")

	if !h.PointerDown(50, 30, inputEpoch) {
		t.Fatal("press over the button should be handled")
	}
	if !btn.Pressed {
		t.Error("button should be pressed")
	}

	h.PointerUp(50, 30, inputEpoch)
	if btn.Pressed {
		t.Error("release should clear the pressed flag")
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	e := sink.events[0]
	if e.Type != EventButtonClick || e.Name != "ok" || e.Path != "/ok" {
		t.Errorf("event = %+v", e)
	}
}

func TestButtonReleaseOutsideDoesNotClick(t *testing.T) {
	s, h, sink := inputFixture(t)
	btn := s.Tree().FindByName("ok")

	h.PointerDown(50, 30, inputEpoch)
	h.PointerUp(150, 130, inputEpoch)
	if btn.Pressed {
		t.Error("release anywhere clears the pressed flag")
	}
	if len(sink.events) != 0 {
		t.Errorf("no click expected, got %v", sink.events)
	}
}

func TestButtonInsideDraggableWinsOverDrag(t *testing.T) {
	s, h, _ := inputFixture(t)

	h.PointerDown(20, 170, inputEpoch)
	if !s.Tree().FindByName("inner").Pressed {
		t.Error("button inside the draggable should take the press")
	}
	if h.activeDraggable != nil {
		t.Error("drag must not start when a button takes the press")
	}
	h.PointerUp(20, 170, inputEpoch)
}

func TestButtonOutsideScrollViewportUnreachable(t *testing.T) {
	s, h, _ := inputFixture(t)

	// "buried" sits at y=120 inside a viewport that ends at y=100.
	if h.PointerDown(210, 125, inputEpoch) {
		t.Error("press below the scroll viewport should hit nothing")
	}
	if s.Tree().FindByName("buried").Pressed {
		t.Error("clipped button must not press")
	}
}

// --- Wheel ---

func TestWheelScrollsDeepestScroll(t *testing.T) {
	s, h, sink := inputFixture(t)
	scroll := s.Tree().FindByName("list")

	if !h.Wheel(250, 50, -2, inputEpoch) {
		t.Fatal("wheel over the scroll should be handled")
	}
	assertFloat(t, scroll.ScrollOffset(), 2*wheelScrollStep, "offset after two notches down")

	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	e := sink.events[0]
	if e.Type != EventScrollChange || e.Name != "list" {
		t.Errorf("event = %+v", e)
	}
	assertFloat(t, e.Value, 2*wheelScrollStep, "event carries the new offset")
}

func TestWheelOutsideScrollIgnored(t *testing.T) {
	_, h, _ := inputFixture(t)
	if h.Wheel(50, 250, -1, inputEpoch) {
		t.Error("wheel away from any scroll should be unhandled")
	}
}

// --- Scrollbar ---

func TestScrollbarThumbDrag(t *testing.T) {
	s, h, _ := inputFixture(t)
	scroll := s.Tree().FindByName("list")
	scroll.scrollbar.alpha = 1 // bar visible

	thumb, ok := scroll.ScrollThumbBounds()
	if !ok {
		t.Fatal("expected a thumb")
	}
	track, _ := scroll.ScrollTrackBounds()

	if !h.PointerDown(thumb.X+2, thumb.Y+2, inputEpoch) {
		t.Fatal("press on the thumb should be handled")
	}
	travel := track.Height - thumb.Height
	h.PointerDrag(thumb.X+2, thumb.Y+2+travel, inputEpoch)
	assertFloat(t, scroll.ScrollOffset(), 150, "full-travel drag reaches the bottom")

	h.PointerUp(thumb.X+2, thumb.Y+2+travel, inputEpoch)
	if h.scrollbarDrag != nil {
		t.Error("release should end the thumb drag")
	}
}

func TestScrollbarTrackClickPages(t *testing.T) {
	s, h, _ := inputFixture(t)
	scroll := s.Tree().FindByName("list")
	scroll.scrollbar.alpha = 1

	thumb, _ := scroll.ScrollThumbBounds()
	h.PointerDown(thumb.X+2, thumb.Y+thumb.Height+10, inputEpoch)
	assertFloat(t, scroll.ScrollOffset(), scrollPageFraction*100, "one page down")
}

func TestScrollbarHiddenBarNotGrabbable(t *testing.T) {
	s, h, _ := inputFixture(t)
	scroll := s.Tree().FindByName("list")

	thumb, _ := scroll.ScrollThumbBounds()
	h.PointerDown(thumb.X+2, thumb.Y+2, inputEpoch)
	if h.scrollbarDrag != nil {
		t.Error("an invisible scrollbar must not start a drag")
	}
}

func TestScrollbarProximityFadesIn(t *testing.T) {
	s, h, _ := inputFixture(t)
	scroll := s.Tree().FindByName("list")
	track, _ := scroll.ScrollTrackBounds()

	h.PointerMove(track.X-scrollHoverZone+1, track.Y+10, inputEpoch)
	if !scroll.scrollbar.mouseNear {
		t.Error("cursor in the hover zone should mark the bar near")
	}
	if scroll.scrollbar.alphaTarget != 1 {
		t.Error("proximity should start the fade-in")
	}
}

// --- Draggables ---

func TestDraggablePointerFlow(t *testing.T) {
	s, h, sink := inputFixture(t)
	handle := s.Tree().FindByName("handle")

	if !h.PointerDown(80, 250, inputEpoch) {
		t.Fatal("press on the drag area should be handled")
	}
	h.PointerDrag(80, 250, inputEpoch) // boundary init frame
	h.PointerDrag(100, 260, inputEpoch)
	assertFloat(t, handle.PosX.Offset, 20, "dx")
	assertFloat(t, handle.PosY.Offset, 10, "dy")

	h.PointerUp(100, 260, inputEpoch)
	if h.activeDraggable != nil {
		t.Error("release should end the drag")
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	e := sink.events[0]
	if e.Type != EventDragMove || e.Name != "dragArea" {
		t.Errorf("event = %+v", e)
	}
	assertFloat(t, e.X, 20, "event x")
	assertFloat(t, e.Y, 10, "event y")
}

func TestPointerDownOnEmptySpace(t *testing.T) {
	_, h, _ := inputFixture(t)
	if h.PointerDown(380, 280, inputEpoch) {
		t.Error("press on empty space should be unhandled")
	}
}
