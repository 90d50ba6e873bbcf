package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/p5gen/p5gen/internal/template/model"
)

// userPrefsPath is the user config location relative to the XDG config home.
const userPrefsPath = "p5gen/config.json"

// UserPrefs are user-level defaults applied when a command is not told
// otherwise by flags or an existing project config.
type UserPrefs struct {
	// Provider is the default CDN provider.
	Provider string `json:"provider"`
	// Delivery is the default delivery mode.
	Delivery model.DeliveryMode `json:"delivery"`
	// Minified selects the .min build by default.
	Minified bool `json:"minified"`
	// IncludePrerelease opts into pre-release versions by default.
	IncludePrerelease bool `json:"includePrerelease"`
}

// DefaultUserPrefs returns the built-in defaults.
func DefaultUserPrefs() *UserPrefs {
	return &UserPrefs{
		Provider: "jsdelivr",
		Delivery: model.DeliveryCDN,
		Minified: true,
	}
}

// LoadUserPrefs reads the user preferences file, returning defaults when it
// does not exist.
func LoadUserPrefs() (*UserPrefs, error) {
	path, err := xdg.SearchConfigFile(userPrefsPath)
	if err != nil {
		return DefaultUserPrefs(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ConfigInvalid, path, "failed to read user preferences", err)
	}

	prefs := DefaultUserPrefs()
	if err := json.Unmarshal(data, prefs); err != nil {
		return nil, NewConfigError(ConfigInvalid, path, "invalid JSON syntax", err)
	}
	return prefs, nil
}

// SaveUserPrefs persists the user preferences under the XDG config home.
func SaveUserPrefs(prefs *UserPrefs) error {
	path, err := xdg.ConfigFile(userPrefsPath)
	if err != nil {
		return NewConfigError(ConfigWriteFailed, userPrefsPath, "failed to resolve config location", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return NewConfigError(ConfigWriteFailed, path, "failed to create config directory", err)
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return NewConfigError(ConfigWriteFailed, path, "failed to encode user preferences", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return NewConfigError(ConfigWriteFailed, path, "failed to write user preferences", err)
	}
	return nil
}
