// Package config reads and writes the per-project p5gen.json file and the
// user-level default preferences.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/p5gen/p5gen/internal/template/model"
)

// Project is the persisted state of a generated project. It records the bound
// p5 version, the types version actually used (which may differ under the
// legacy strategy), and the formatting choices later updates must preserve.
type Project struct {
	// Name is the project name.
	Name string `json:"name"`
	// Version is the bound p5.js version.
	Version string `json:"version"`
	// TypesVersion is the type-definitions version actually used.
	TypesVersion string `json:"typesVersion,omitempty"`
	// Mode is the sketch mode the project is typed against.
	Mode model.SketchMode `json:"mode"`
	// Delivery is where the script is served from.
	Delivery model.DeliveryMode `json:"delivery"`
	// Provider is the CDN provider for cdn delivery.
	Provider string `json:"provider,omitempty"`
	// Minified selects the .min build.
	Minified bool `json:"minified"`
	// Template is the template spec the project was generated from, or "default".
	Template string `json:"template,omitempty"`
	// CreatedAt is the generation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultProject returns a Project with the defaults applied to fields the
// caller leaves unset.
func DefaultProject(name string) *Project {
	return &Project{
		Name:      name,
		Mode:      model.ModeGlobal,
		Delivery:  model.DeliveryCDN,
		Provider:  "jsdelivr",
		Minified:  true,
		Template:  "default",
		CreatedAt: time.Now().UTC(),
	}
}

// Load reads the project config from dir.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, model.ProjectConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigError(ConfigNotFound, path, "project configuration not found", err)
		}
		return nil, NewConfigError(ConfigInvalid, path, "failed to read project configuration", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, NewConfigError(ConfigInvalid, path, "invalid JSON syntax", err)
	}
	return &p, nil
}

// Save writes the project config into dir.
func Save(dir string, p *Project) error {
	path := filepath.Join(dir, model.ProjectConfigFile)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return NewConfigError(ConfigWriteFailed, path, "failed to encode project configuration", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return NewConfigError(ConfigWriteFailed, path, "failed to write project configuration", err)
	}
	return nil
}
