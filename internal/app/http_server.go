package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nvalkov/areacage/internal/geom"
	"github.com/nvalkov/areacage/internal/profile"
	"github.com/nvalkov/areacage/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/tablets", a.handleTablets)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/i18n", a.handleI18n)
	mux.HandleFunc("/api/profiles", a.handleProfiles)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", staticFileServer(staticDir, a.logger.Printf))
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	Authenticated bool      `json:"authenticated"`
	TabletID      string    `json:"tablet"`
	Surface       geom.Size `json:"surface"`
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	OffsetX       float64   `json:"offsetX"`
	OffsetY       float64   `json:"offsetY"`
	RatioLocked   bool      `json:"ratioLocked"`
	Positions     []string  `json:"positions"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleTablets returns the model catalog.
func (a *App) handleTablets(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	_ = json.NewEncoder(w).Encode(a.catalog)
}

// handleState returns the current area, tablet, and alignment positions.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	snap := a.session.Snapshot()
	_ = json.NewEncoder(w).Encode(stateResponse{
		Authenticated: snap.Authenticated,
		TabletID:      snap.TabletID,
		Surface:       snap.Tablet,
		Width:         snap.Area.Size.Width,
		Height:        snap.Area.Size.Height,
		OffsetX:       snap.Area.Offset.X,
		OffsetY:       snap.Area.Offset.Y,
		RatioLocked:   snap.RatioLocked,
		Positions:     geom.Positions(),
	})
}

// handleI18n returns the label table for the UI bootstrap.
func (a *App) handleI18n(w http.ResponseWriter, _ *http.Request) {
	_ = json.NewEncoder(w).Encode(a.strings.All())
}

// handleProfiles serves the favorites collection. The control websocket
// mirrors these mutations with live events for its connected client.
func (a *App) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		profiles, err := a.store.List()
		if err != nil {
			a.logger.Error("list profiles failed", "err", err)
			http.Error(w, "failed to list profiles", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(profiles)
	case http.MethodPost:
		var p profile.Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		saved, err := a.store.Save(p)
		if err != nil {
			a.logger.Error("save profile failed", "err", err)
			http.Error(w, "failed to save profile", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(saved)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := a.store.Delete(id); err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			a.logger.Error("delete profile failed", "err", err)
			http.Error(w, "failed to delete profile", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string, logf func(string, ...any)) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		logf("static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
