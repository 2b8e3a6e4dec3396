package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nvalkov/areacage/internal/config"
	"github.com/nvalkov/areacage/internal/geom"
	"github.com/nvalkov/areacage/internal/profile"
)

// testConfig returns a config pointing at a temp data dir.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		ListenAddr:     "127.0.0.1:0",
		DataDir:        dir,
		CatalogPath:    filepath.Join(dir, "tablets.yaml"),
		I18nPath:       filepath.Join(dir, "strings.yaml"),
		ProfilesPath:   filepath.Join(dir, "profiles.json"),
		StatePath:      filepath.Join(dir, "state.json"),
		DefaultTablet:  "wacom-ctl-672",
		MoveThrottleMs: 16,
		SaveDebounceMs: 500,
		PaddingPx:      24,
	}
}

// newTestApp builds and starts an app against temp storage.
func newTestApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	a, err := New(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return a
}

// TestStart_FirstRunCoversSurface verifies the initial area spans the default
// tablet, centered.
func TestStart_FirstRunCoversSurface(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	snap := a.Session().Snapshot()

	if snap.TabletID != "wacom-ctl-672" {
		t.Fatalf("expected default tablet, got %q", snap.TabletID)
	}
	if snap.Area.Size.Width != 216 || snap.Area.Size.Height != 135 {
		t.Fatalf("expected full-surface area, got %+v", snap.Area.Size)
	}
	if snap.Area.Offset.X != 108 || snap.Area.Offset.Y != 67.5 {
		t.Fatalf("expected centered offset, got %+v", snap.Area.Offset)
	}
}

// TestStart_RestoresPersistedState verifies a saved state survives a restart,
// re-constrained against the tablet.
func TestStart_RestoresPersistedState(t *testing.T) {
	cfg := testConfig(t)
	st := profile.State{
		TabletID: "huion-h640p",
		Area: geom.Area{
			Size:   geom.Size{Width: 80, Height: 50},
			Offset: geom.Point{X: 500, Y: 500}, // out of bounds on purpose
		},
		RatioLocked: true,
	}
	if err := profile.SaveState(cfg.StatePath, st); err != nil {
		t.Fatalf("seed state: %v", err)
	}

	a := newTestApp(t, cfg)
	snap := a.Session().Snapshot()
	if snap.TabletID != "huion-h640p" {
		t.Fatalf("expected restored tablet, got %q", snap.TabletID)
	}
	// H640P surface is 160x100: offset must be pulled inside.
	if snap.Area.Offset.X != 120 || snap.Area.Offset.Y != 75 {
		t.Fatalf("expected constrained offset (120,75), got %+v", snap.Area.Offset)
	}
	if !snap.RatioLocked {
		t.Fatalf("expected ratio lock restored")
	}
}

// TestSaveCurrentState_RoundTrips verifies the persistence collaborator.
func TestSaveCurrentState_RoundTrips(t *testing.T) {
	cfg := testConfig(t)
	a := newTestApp(t, cfg)

	a.Session().SetArea(geom.Area{
		Size:   geom.Size{Width: 60, Height: 40},
		Offset: geom.Point{X: 30, Y: 20},
	})
	a.saveCurrentState()

	st, err := profile.LoadState(cfg.StatePath)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if st.TabletID != "wacom-ctl-672" || st.Area.Size.Width != 60 || st.Area.Offset.X != 30 {
		t.Fatalf("unexpected persisted state: %+v", st)
	}
}

// TestRoutes_RequireAuth verifies the API rejects unauthenticated requests
// and accepts them after login.
func TestRoutes_RequireAuth(t *testing.T) {
	cfg := testConfig(t)
	cfg.UIPassword = "secret"
	a := newTestApp(t, cfg)

	mux := http.NewServeMux()
	a.RegisterRoutes(mux, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", rec.Code)
	}

	body, _ := json.Marshal(loginRequest{Password: "secret"})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected login to succeed, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after login, got %d", rec.Code)
	}
}

// TestHandleState_Payload verifies the state endpoint shape.
func TestHandleState_Payload(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if resp.TabletID != "wacom-ctl-672" || resp.Surface.Width != 216 {
		t.Fatalf("unexpected state payload: %+v", resp)
	}
	if len(resp.Positions) != 9 {
		t.Fatalf("expected 9 alignment positions, got %d", len(resp.Positions))
	}
}

// TestHandleProfiles_CRUD exercises the favorites endpoint over HTTP.
func TestHandleProfiles_CRUD(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, t.TempDir())

	body, _ := json.Marshal(profile.Profile{
		Name:     "main",
		TabletID: "wacom-ctl-672",
		Area: geom.Area{
			Size:   geom.Size{Width: 60, Height: 40},
			Offset: geom.Point{X: 30, Y: 20},
		},
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profiles", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on create, got %d", rec.Code)
	}
	var saved profile.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode saved profile: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected assigned id, got %+v", saved)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))
	var profiles []profile.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &profiles); err != nil {
		t.Fatalf("decode profile list: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "main" {
		t.Fatalf("unexpected profile list: %+v", profiles)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/profiles?id="+saved.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/profiles?id="+saved.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on double delete, got %d", rec.Code)
	}
}

// TestHandleTablets_ReturnsCatalog verifies the catalog endpoint.
func TestHandleTablets_ReturnsCatalog(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tablets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var models []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &models); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(models) == 0 {
		t.Fatalf("expected non-empty catalog")
	}
}
