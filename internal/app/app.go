// Package app wires configuration, session state, the control channel, and
// the HTTP API together.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nvalkov/areacage/internal/config"
	"github.com/nvalkov/areacage/internal/control"
	"github.com/nvalkov/areacage/internal/geom"
	"github.com/nvalkov/areacage/internal/i18n"
	"github.com/nvalkov/areacage/internal/profile"
	"github.com/nvalkov/areacage/internal/session"
	"github.com/nvalkov/areacage/internal/tablet"
)

// App coordinates the HTTP API, the control websocket, and persistence.
type App struct {
	cfg     config.Config
	logger  *log.Logger
	session *session.Session
	catalog []tablet.Model
	store   *profile.Store
	strings i18n.Table
	control *control.Server
}

// New creates the application with its dependencies wired.
func New(cfg config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	catalog, err := tablet.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	strings, err := i18n.Load(cfg.I18nPath)
	if err != nil {
		return nil, fmt.Errorf("load strings: %w", err)
	}

	a := &App{
		cfg:     cfg,
		logger:  logger,
		session: session.New(cfg.UIPassword),
		catalog: catalog,
		store:   profile.NewStore(cfg.ProfilesPath),
		strings: strings,
	}
	a.control = control.NewServer(a.session, catalog, control.Options{
		MoveInterval:   time.Duration(cfg.MoveThrottleMs) * time.Millisecond,
		RenderInterval: time.Duration(cfg.MoveThrottleMs) * time.Millisecond,
		SaveDebounce:   time.Duration(cfg.SaveDebounceMs) * time.Millisecond,
		Padding:        float64(cfg.PaddingPx),
		Store:          a.store,
		SaveState:      a.saveCurrentState,
		Strings:        strings,
		Logger:         logger,
	})
	return a, nil
}

// Start restores the persisted state or derives an initial area covering the
// default tablet's full surface.
func (a *App) Start() error {
	st, err := profile.LoadState(a.cfg.StatePath)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	model, ok := tablet.ModelByID(a.catalog, st.TabletID)
	if !ok {
		model, ok = tablet.ModelByID(a.catalog, a.cfg.DefaultTablet)
	}
	if !ok && len(a.catalog) > 0 {
		model = a.catalog[0]
		ok = true
	}
	if !ok {
		return errors.New("tablet catalog is empty")
	}
	a.session.SetTablet(model.ID, model.Size())

	area := st.Area
	if !area.Size.Positive() {
		// First run: the full surface, centered.
		area = geom.Area{
			Size:   model.Size(),
			Offset: geom.Point{X: model.Width / 2, Y: model.Height / 2},
		}
	}
	area.Offset = geom.ConstrainOffset(area.Offset, area.Size, model.Size())
	a.session.SetArea(area)
	a.session.SetRatioLock(st.RatioLocked)

	a.logger.Info("state restored", "tablet", model.ID,
		"areaW", area.Size.Width, "areaH", area.Size.Height)
	return nil
}

// Stop flushes pending persistence work.
func (a *App) Stop() error {
	a.control.FlushSaves()
	return nil
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// Session returns the runtime session state.
func (a *App) Session() *session.Session {
	return a.session
}

// saveCurrentState persists the session snapshot. Called only through the
// debounce wrapper so rapid edits coalesce into one write.
func (a *App) saveCurrentState() {
	snap := a.session.Snapshot()
	st := profile.State{
		TabletID:    snap.TabletID,
		Area:        snap.Area,
		RatioLocked: snap.RatioLocked,
	}
	if err := profile.SaveState(a.cfg.StatePath, st); err != nil {
		a.logger.Error("save state failed", "path", a.cfg.StatePath, "err", err)
		return
	}
	a.logger.Debug("state saved", "path", a.cfg.StatePath)
}
