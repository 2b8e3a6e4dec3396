package control

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nvalkov/areacage/internal/geom"
	"github.com/nvalkov/areacage/internal/i18n"
	"github.com/nvalkov/areacage/internal/profile"
	"github.com/nvalkov/areacage/internal/session"
	"github.com/nvalkov/areacage/internal/tablet"
	"github.com/nvalkov/areacage/internal/testutil"
)

// newTestServer builds a server with a recording emitter, a CTL-672 surface
// (216x135 mm), and a 60x40 area at offset (30,20).
func newTestServer(t *testing.T, store *profile.Store) (*Server, *session.Session, *testutil.EventLog) {
	t.Helper()
	sess := session.New("")
	sess.SetTablet("wacom-ctl-672", geom.Size{Width: 216, Height: 135})
	sess.SetArea(geom.Area{
		Size:   geom.Size{Width: 60, Height: 40},
		Offset: geom.Point{X: 30, Y: 20},
	})

	strings, err := i18n.Load("")
	if err != nil {
		t.Fatalf("load strings: %v", err)
	}
	s := NewServer(sess, tablet.Builtin(), Options{
		Store:   store,
		Strings: strings,
	})

	events := &testutil.EventLog{}
	s.SetEmitFunc(func(ev Event) { events.Add(ev.T, ev) })
	return s, sess, events
}

// setScale2 reports a container whose inner box renders the CTL-672 at
// exactly 2 px/mm (padding 24 on each side).
func setScale2(s *Server) {
	s.handleMessage(Message{T: "container", W: 480, H: 360})
}

// lastEvent returns the most recent event of the given type.
func lastEvent(t *testing.T, events *testutil.EventLog, kind string) Event {
	t.Helper()
	entry, ok := events.Last(kind)
	if !ok {
		t.Fatalf("no %q event recorded; got %v", kind, events.Kinds())
	}
	return entry.(Event)
}

// TestDragFlow_MovesAndCommits runs the pointer path end to end: a 100 px
// move at 2 px/mm shifts the area 50 mm and the release emits "moved".
func TestDragFlow_MovesAndCommits(t *testing.T) {
	s, sess, events := newTestServer(t, nil)
	clock := testutil.NewClock(time.Unix(0, 0))
	s.Dragger().SetNowFunc(clock.Now)

	setScale2(s)
	if ev := lastEvent(t, events, EvDisplay); ev.Display.Scale != 2 {
		t.Fatalf("expected scale 2, got %v", ev.Display.Scale)
	}

	s.handleMessage(Message{T: "down", ID: 1, X: 100, Y: 100})
	s.handleMessage(Message{T: "move", ID: 1, X: 200, Y: 100})
	if got := sess.Area().Offset; got.X != 80 || got.Y != 20 {
		t.Fatalf("expected offset (80,20) after move, got %+v", got)
	}

	clock.Advance(20 * time.Millisecond)
	s.handleMessage(Message{T: "up", ID: 1, X: 200, Y: 100})

	moved := lastEvent(t, events, EvMoved)
	if moved.OffsetX != 80 || moved.OffsetY != 20 || moved.Width != 60 || moved.Height != 40 {
		t.Fatalf("unexpected moved payload: %+v", moved)
	}
}

// TestDragFlow_SecondPointerIgnored verifies multi-touch does not steer or
// restart the session.
func TestDragFlow_SecondPointerIgnored(t *testing.T) {
	s, sess, _ := newTestServer(t, nil)
	clock := testutil.NewClock(time.Unix(0, 0))
	s.Dragger().SetNowFunc(clock.Now)
	setScale2(s)

	s.handleMessage(Message{T: "down", ID: 1, X: 100, Y: 100})
	s.handleMessage(Message{T: "down", ID: 2, X: 300, Y: 300})
	s.handleMessage(Message{T: "move", ID: 2, X: 400, Y: 300})

	if got := sess.Area().Offset; got.X != 30 || got.Y != 20 {
		t.Fatalf("expected offset untouched by second pointer, got %+v", got)
	}
	if !s.Dragger().Dragging() {
		t.Fatalf("expected first session still active")
	}
}

// TestAlign_EmitsPositioned verifies alignment placement and its event.
func TestAlign_EmitsPositioned(t *testing.T) {
	s, sess, events := newTestServer(t, nil)
	setScale2(s)

	s.handleMessage(Message{T: "align", Name: geom.PosBottomRight})
	if got := sess.Area().Offset; got.X != 186 || got.Y != 115 {
		t.Fatalf("expected offset (186,115), got %+v", got)
	}

	positioned := lastEvent(t, events, EvPositioned)
	if positioned.Position != geom.PosBottomRight || positioned.OffsetX != 186 {
		t.Fatalf("unexpected positioned payload: %+v", positioned)
	}
}

// TestAlign_UnknownNameIsNoOp verifies an unknown name moves nothing and
// surfaces a toast instead.
func TestAlign_UnknownNameIsNoOp(t *testing.T) {
	s, sess, events := newTestServer(t, nil)
	setScale2(s)

	before := sess.Area().Offset
	s.handleMessage(Message{T: "align", Name: "diagonal"})
	if sess.Area().Offset != before {
		t.Fatalf("expected offset unchanged, got %+v", sess.Area().Offset)
	}
	if ev := lastEvent(t, events, EvNotice); ev.Notice != "Unknown alignment position" {
		t.Fatalf("unexpected notice %q", ev.Notice)
	}
}

// TestCenter_EmitsCentered verifies the programmatic center shortcut.
func TestCenter_EmitsCentered(t *testing.T) {
	s, sess, events := newTestServer(t, nil)
	setScale2(s)

	s.handleMessage(Message{T: "center"})
	if got := sess.Area().Offset; got.X != 108 || got.Y != 67.5 {
		t.Fatalf("expected offset (108,67.5), got %+v", got)
	}
	if ev := lastEvent(t, events, EvCentered); ev.OffsetX != 108 {
		t.Fatalf("unexpected centered payload: %+v", ev)
	}
}

// TestSetTablet_AdaptsArea verifies a model switch keeps a fitting area's
// size and re-constrains its offset against the new surface.
func TestSetTablet_AdaptsArea(t *testing.T) {
	s, sess, events := newTestServer(t, nil)
	setScale2(s)

	// Huion H420 is 106x58: the 60x40 area still fits, offset must be pulled in.
	s.handleMessage(Message{T: "setTablet", TabletID: "huion-h420"})
	if sess.TabletID() != "huion-h420" {
		t.Fatalf("expected tablet switch, got %q", sess.TabletID())
	}
	area := sess.Area()
	if area.Size.Width != 60 || area.Size.Height != 40 {
		t.Fatalf("expected size preserved, got %+v", area.Size)
	}
	if area.Offset.X != 30 || area.Offset.Y != 20 {
		t.Fatalf("expected offset (30,20), got %+v", area.Offset)
	}
	if ev := lastEvent(t, events, EvNotice); ev.Notice != "Tablet model changed" {
		t.Fatalf("unexpected notice %q", ev.Notice)
	}
}

// TestSetArea_ParsesWithFallbacks verifies garbage form input falls back to
// the current values.
func TestSetArea_ParsesWithFallbacks(t *testing.T) {
	s, sess, _ := newTestServer(t, nil)
	setScale2(s)

	s.handleMessage(Message{T: "setArea", Width: "abc", Height: "", OffsetX: "90", OffsetY: "nope"})
	area := sess.Area()
	if area.Size.Width != 60 || area.Size.Height != 40 {
		t.Fatalf("expected size fallback, got %+v", area.Size)
	}
	if area.Offset.X != 90 || area.Offset.Y != 20 {
		t.Fatalf("expected offset (90,20), got %+v", area.Offset)
	}
}

// TestSetArea_RatioLockCouplesDimensions verifies the engaged lock derives
// the other dimension from the edited one.
func TestSetArea_RatioLockCouplesDimensions(t *testing.T) {
	s, sess, _ := newTestServer(t, nil)
	setScale2(s)

	enabled := true
	s.handleMessage(Message{T: "ratioLock", Enabled: &enabled})

	s.handleMessage(Message{T: "setArea", Field: "width", Width: "90"})
	area := sess.Area()
	if area.Size.Width != 90 || area.Size.Height != 60 {
		t.Fatalf("expected 90x60 with locked 1.5 ratio, got %+v", area.Size)
	}

	s.handleMessage(Message{T: "setArea", Field: "height", Height: "30"})
	area = sess.Area()
	if area.Size.Width != 45 || area.Size.Height != 30 {
		t.Fatalf("expected 45x30 with locked 1.5 ratio, got %+v", area.Size)
	}
}

// TestProfiles_SaveApplyDelete exercises the favorites round trip over the
// control protocol.
func TestProfiles_SaveApplyDelete(t *testing.T) {
	store := profile.NewStore(filepath.Join(t.TempDir(), "profiles.json"))
	s, sess, events := newTestServer(t, store)
	setScale2(s)

	s.handleMessage(Message{T: "saveProfile", Name: "main"})
	saved := lastEvent(t, events, EvProfiles)
	if len(saved.Profiles) != 1 || saved.Profiles[0].Name != "main" {
		t.Fatalf("unexpected profiles payload: %+v", saved.Profiles)
	}
	id := saved.Profiles[0].ID

	// Disturb the state, then restore it from the profile.
	s.handleMessage(Message{T: "center"})
	s.handleMessage(Message{T: "applyProfile", ProfileID: id})
	if got := sess.Area().Offset; got.X != 30 || got.Y != 20 {
		t.Fatalf("expected profile offset restored, got %+v", got)
	}
	if ev := lastEvent(t, events, EvNotice); ev.Notice != "Profile applied" {
		t.Fatalf("unexpected notice %q", ev.Notice)
	}

	s.handleMessage(Message{T: "deleteProfile", ProfileID: id})
	s.handleMessage(Message{T: "applyProfile", ProfileID: id})
	if ev := lastEvent(t, events, EvNotice); ev.Notice != "Profile not found" {
		t.Fatalf("unexpected notice %q", ev.Notice)
	}
}

// TestFocusGuard_TravelsWithDisplay verifies the focused field rides along on
// display events so the shell can skip overwriting it.
func TestFocusGuard_TravelsWithDisplay(t *testing.T) {
	s, _, events := newTestServer(t, nil)
	setScale2(s)

	s.handleMessage(Message{T: "focus", Field: "width"})
	s.handleMessage(Message{T: "center"})
	if ev := lastEvent(t, events, EvDisplay); ev.Focused != "width" {
		t.Fatalf("expected focused field on display event, got %q", ev.Focused)
	}

	s.handleMessage(Message{T: "focus", Field: ""})
	s.handleMessage(Message{T: "center"})
	if ev := lastEvent(t, events, EvDisplay); ev.Focused != "" {
		t.Fatalf("expected focus cleared, got %q", ev.Focused)
	}
}
