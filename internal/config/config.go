// Package config loads environment configuration for AreaCage.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr     = "127.0.0.1:8980"
	defaultDataDir        = "./data"
	defaultMoveThrottleMs = 16
	defaultSaveDebounceMs = 500
	defaultPaddingPx      = 24
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr     string
	UIPassword     string
	DataDir        string
	CatalogPath    string
	I18nPath       string
	ProfilesPath   string
	StatePath      string
	DefaultTablet  string
	MoveThrottleMs int
	SaveDebounceMs int
	PaddingPx      int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		DataDir:        defaultDataDir,
		DefaultTablet:  "wacom-ctl-672",
		MoveThrottleMs: defaultMoveThrottleMs,
		SaveDebounceMs: defaultSaveDebounceMs,
		PaddingPx:      defaultPaddingPx,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.CatalogPath = envString("CATALOG_PATH", filepath.Join(cfg.DataDir, "tablets.yaml"))
	cfg.I18nPath = envString("I18N_PATH", filepath.Join(cfg.DataDir, "strings.yaml"))
	cfg.ProfilesPath = envString("PROFILES_PATH", filepath.Join(cfg.DataDir, "profiles.json"))
	cfg.StatePath = envString("STATE_PATH", filepath.Join(cfg.DataDir, "state.json"))
	cfg.DefaultTablet = envString("DEFAULT_TABLET", cfg.DefaultTablet)

	moveThrottle, err := envInt("MOVE_THROTTLE_MS", cfg.MoveThrottleMs)
	if err != nil {
		return Config{}, err
	}
	if moveThrottle <= 0 {
		return Config{}, fmt.Errorf("MOVE_THROTTLE_MS must be > 0")
	}
	cfg.MoveThrottleMs = moveThrottle

	saveDebounce, err := envInt("SAVE_DEBOUNCE_MS", cfg.SaveDebounceMs)
	if err != nil {
		return Config{}, err
	}
	if saveDebounce <= 0 {
		return Config{}, fmt.Errorf("SAVE_DEBOUNCE_MS must be > 0")
	}
	cfg.SaveDebounceMs = saveDebounce

	padding, err := envInt("VIEWPORT_PADDING_PX", cfg.PaddingPx)
	if err != nil {
		return Config{}, err
	}
	if padding < 0 {
		return Config{}, fmt.Errorf("VIEWPORT_PADDING_PX must be >= 0")
	}
	cfg.PaddingPx = padding

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(value, `"'`)
	return key, value, true
}
