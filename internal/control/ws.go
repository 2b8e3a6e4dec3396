package control

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/nvalkov/areacage/internal/drag"
	"github.com/nvalkov/areacage/internal/geom"
	"github.com/nvalkov/areacage/internal/i18n"
	"github.com/nvalkov/areacage/internal/numeric"
	"github.com/nvalkov/areacage/internal/profile"
	"github.com/nvalkov/areacage/internal/render"
	"github.com/nvalkov/areacage/internal/sched"
	"github.com/nvalkov/areacage/internal/session"
	"github.com/nvalkov/areacage/internal/tablet"
)

// defaultContainer is used until the UI reports its viewport size.
var defaultContainer = geom.Size{Width: 800, Height: 600}

// Options configures the control server and its optional collaborators.
// Store and SaveState are optional capabilities checked once at construction;
// a nil Store disables profile commands and a nil SaveState disables the
// debounced persistence of the current state.
type Options struct {
	MoveInterval   time.Duration
	RenderInterval time.Duration
	SaveDebounce   time.Duration
	Padding        float64
	Store          *profile.Store
	SaveState      func()
	Strings        i18n.Table
	Logger         *log.Logger
}

// Server owns the drag session and serializes all area writes while a drag is
// active. It accepts a single control connection at a time.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	catalog  []tablet.Model
	dragger  *drag.Controller
	pipeline *render.Pipeline
	display  *sched.Throttle
	saves    *sched.Debouncer
	store    *profile.Store
	strings  i18n.Table
	logger   *log.Logger

	container geom.Size
	conn      *websocket.Conn
	emit      func(Event)
}

// NewServer creates a control websocket server.
func NewServer(sess *session.Session, catalog []tablet.Model, opts Options) *Server {
	s := &Server{
		session:   sess,
		catalog:   catalog,
		dragger:   drag.NewController(opts.MoveInterval),
		display:   sched.NewThrottle(opts.RenderInterval),
		store:     opts.Store,
		strings:   opts.Strings,
		logger:    opts.Logger,
		container: defaultContainer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if opts.SaveState != nil {
		s.saves = sched.NewDebouncer(opts.SaveDebounce, opts.SaveState)
	}
	s.pipeline = render.NewPipeline(opts.Padding, s.scheduleSave)
	s.emit = s.writeEvent
	return s
}

// SetEmitFunc overrides event delivery. Used by tests to capture events
// without a websocket connection.
func (s *Server) SetEmitFunc(fn func(Event)) {
	if fn != nil {
		s.emit = fn
	}
}

// Dragger returns the drag controller for clock injection in tests.
func (s *Server) Dragger() *drag.Controller {
	return s.dragger
}

// FlushSaves runs any pending debounced save. Called on shutdown.
func (s *Server) FlushSaves() {
	if s.saves != nil {
		s.saves.Flush()
	}
	s.display.Stop()
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	s.emitDisplay()
	s.emitProfiles()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		s.handleMessage(msg)
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// writeEvent sends an event over the active connection. Timer goroutines also
// deliver events, so writes are serialized.
func (s *Server) writeEvent(ev Event) {
	s.mu.Lock()
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		return
	}
	err := conn.WriteJSON(ev)
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("control: event write failed", "type", ev.T, "err", err)
	}
}

// handleMessage dispatches a single control message. Handler failures are
// logged and dropped; they never kill the read loop or corrupt the area state.
func (s *Server) handleMessage(msg Message) {
	switch msg.T {
	case "down":
		s.handlePointerDown(msg)
	case "move":
		s.handlePointerMove(msg)
	case "up":
		s.handlePointerUp(msg)
	case "align":
		s.handleAlign(msg.Name)
	case "center":
		s.handleCenter()
	case "setTablet":
		s.handleSetTablet(msg.TabletID)
	case "setArea":
		s.handleSetArea(msg)
	case "ratioLock":
		if msg.Enabled != nil {
			s.session.SetRatioLock(*msg.Enabled)
			s.emitDisplay()
		}
	case "focus":
		s.session.SetFocusedField(msg.Field)
	case "container":
		s.handleContainer(msg.W, msg.H)
	case "saveProfile":
		s.handleSaveProfile(msg.Name)
	case "applyProfile":
		s.handleApplyProfile(msg.ProfileID)
	case "deleteProfile":
		s.handleDeleteProfile(msg.ProfileID)
	default:
		s.logger.Debug("control: ignoring unknown message", "type", msg.T)
	}
}

// handlePointerDown starts a drag session at the pointer position. A second
// simultaneous contact is ignored by the controller.
func (s *Server) handlePointerDown(msg Message) {
	s.dragger.Down(msg.ID, msg.X, msg.Y, s.session.Area().Offset)
}

// handlePointerMove advances the drag and re-renders at the throttled cadence.
func (s *Server) handlePointerMove(msg Message) {
	snap := s.session.Snapshot()
	offset, ok := s.dragger.Move(msg.ID, msg.X, msg.Y, s.scale(), snap.Area.Size, snap.Tablet)
	if !ok {
		return
	}
	s.session.SetOffset(offset)
	s.display.Offer(s.emitDisplay)
}

// handlePointerUp commits the final constrained position, re-renders without
// throttling, and emits the moved notification.
func (s *Server) handlePointerUp(msg Message) {
	snap := s.session.Snapshot()
	offset, ok := s.dragger.Up(msg.ID, msg.X, msg.Y, s.scale(), snap.Area.Size, snap.Tablet)
	if !ok {
		return
	}
	s.session.SetOffset(offset)
	s.emitDisplay()
	s.emitCommitted(EvMoved, "")
	s.notify("area.moved")
}

// handleAlign places the area at one of the nine canonical positions.
func (s *Server) handleAlign(name string) {
	snap := s.session.Snapshot()
	pos, ok := geom.ComputePosition(name, snap.Tablet, snap.Area.Size)
	if !ok {
		s.notify("align.unknown")
		return
	}
	s.session.SetOffset(geom.ConstrainOffset(pos, snap.Area.Size, snap.Tablet))
	s.emitDisplay()
	s.emitCommitted(EvPositioned, name)
}

// handleCenter is the programmatic center shortcut.
func (s *Server) handleCenter() {
	snap := s.session.Snapshot()
	pos, _ := geom.ComputePosition(geom.PosCenter, snap.Tablet, snap.Area.Size)
	s.session.SetOffset(geom.ConstrainOffset(pos, snap.Area.Size, snap.Tablet))
	s.emitDisplay()
	s.emitCommitted(EvCentered, "")
}

// handleSetTablet switches the tablet model and adapts the area to the new
// surface.
func (s *Server) handleSetTablet(id string) {
	model, ok := tablet.ModelByID(s.catalog, id)
	if !ok {
		s.logger.Warn("control: unknown tablet model", "id", id)
		return
	}
	snap := s.session.Snapshot()
	adapted := tablet.Adapt(snap.Area, snap.Tablet, model.Size())
	s.session.SetTablet(model.ID, model.Size())
	s.session.SetArea(adapted)
	s.emitDisplay()
	s.notify("tablet.changed")
}

// handleSetArea applies form edits. Values arrive as raw strings; parsing
// falls back to the current value, so a field mid-edit never breaks geometry.
func (s *Server) handleSetArea(msg Message) {
	snap := s.session.Snapshot()
	cur := snap.Area

	width := numeric.ParseFloatSafe(msg.Width, cur.Size.Width)
	height := numeric.ParseFloatSafe(msg.Height, cur.Size.Height)
	offsetX := numeric.ParseFloatSafe(msg.OffsetX, cur.Offset.X)
	offsetY := numeric.ParseFloatSafe(msg.OffsetY, cur.Offset.Y)
	if width <= 0 {
		width = cur.Size.Width
	}
	if height <= 0 {
		height = cur.Size.Height
	}

	if snap.RatioLocked && snap.LockedRatio > 0 {
		if msg.Field == "height" {
			width = height * snap.LockedRatio
		} else {
			height = width / snap.LockedRatio
		}
	}

	size := geom.Size{Width: width, Height: height}
	s.session.SetArea(geom.Area{
		Size:   size,
		Offset: geom.ConstrainOffset(geom.Point{X: offsetX, Y: offsetY}, size, snap.Tablet),
	})
	s.display.Offer(s.emitDisplay)
}

// handleContainer records the viewport size reported by the UI.
func (s *Server) handleContainer(w, h float64) {
	if w <= 0 || h <= 0 {
		s.logger.Warn("control: ignoring degenerate container", "w", w, "h", h)
		return
	}
	s.mu.Lock()
	s.container = geom.Size{Width: w, Height: h}
	s.mu.Unlock()
	s.emitDisplay()
}

// handleSaveProfile stores the current area as a named favorite.
func (s *Server) handleSaveProfile(name string) {
	if s.store == nil {
		s.logger.Warn("control: profile store not configured")
		return
	}
	snap := s.session.Snapshot()
	if _, err := s.store.Save(profile.Profile{Name: name, TabletID: snap.TabletID, Area: snap.Area}); err != nil {
		s.logger.Error("control: save profile failed", "err", err)
		return
	}
	s.emitProfiles()
	s.notify("profile.saved")
}

// handleApplyProfile restores a saved favorite, switching to its tablet model
// when the catalog still knows it.
func (s *Server) handleApplyProfile(id string) {
	if s.store == nil {
		s.logger.Warn("control: profile store not configured")
		return
	}
	p, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			s.notify("profile.missing")
		} else {
			s.logger.Error("control: load profile failed", "err", err)
		}
		return
	}

	if model, ok := tablet.ModelByID(s.catalog, p.TabletID); ok {
		s.session.SetTablet(model.ID, model.Size())
	}
	surface := s.session.Tablet()
	p.Area.Offset = geom.ConstrainOffset(p.Area.Offset, p.Area.Size, surface)
	s.session.SetArea(p.Area)
	s.emitDisplay()
	s.notify("profile.applied")
}

// handleDeleteProfile removes a saved favorite.
func (s *Server) handleDeleteProfile(id string) {
	if s.store == nil {
		s.logger.Warn("control: profile store not configured")
		return
	}
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			s.notify("profile.missing")
		} else {
			s.logger.Error("control: delete profile failed", "err", err)
		}
		return
	}
	s.emitProfiles()
	s.notify("profile.deleted")
}

// emitDisplay renders the current state and pushes a display event. The
// focused field travels with the frame so the shell never clobbers an input
// the user is typing into.
func (s *Server) emitDisplay() {
	snap := s.session.Snapshot()
	// The trailing-throttle timer also renders, so pipeline access is serialized.
	s.mu.Lock()
	geometry := s.pipeline.UpdateDisplay(snap.Tablet, snap.Area, s.container, snap.RatioLocked)
	s.mu.Unlock()
	s.emit(Event{
		T:        EvDisplay,
		OffsetX:  snap.Area.Offset.X,
		OffsetY:  snap.Area.Offset.Y,
		Width:    snap.Area.Size.Width,
		Height:   snap.Area.Size.Height,
		Focused:  snap.FocusedField,
		TabletID: snap.TabletID,
		Display:  &geometry,
	})
}

// emitCommitted pushes a committed-change notification carrying the final
// area geometry.
func (s *Server) emitCommitted(eventType, position string) {
	snap := s.session.Snapshot()
	s.emit(Event{
		T:        eventType,
		OffsetX:  snap.Area.Offset.X,
		OffsetY:  snap.Area.Offset.Y,
		Width:    snap.Area.Size.Width,
		Height:   snap.Area.Size.Height,
		Position: position,
	})
}

// emitProfiles pushes the saved profile list.
func (s *Server) emitProfiles() {
	if s.store == nil {
		return
	}
	profiles, err := s.store.List()
	if err != nil {
		s.logger.Error("control: list profiles failed", "err", err)
		return
	}
	s.emit(Event{T: EvProfiles, Profiles: profiles})
}

// notify pushes a toast with a resolved label.
func (s *Server) notify(key string) {
	s.emit(Event{T: EvNotice, Notice: s.strings.T(key)})
}

// scheduleSave forwards the render pipeline's save request to the debouncer.
func (s *Server) scheduleSave() {
	if s.saves != nil {
		s.saves.Trigger()
	}
}

// scale returns the current viewport scale.
func (s *Server) scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline.Scale()
}
