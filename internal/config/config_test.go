package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p5gen/p5gen/internal/template/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	saved := &Project{
		Name:         "my-sketch",
		Version:      "2.1.1",
		TypesVersion: "2.1.1",
		Mode:         model.ModeInstance,
		Delivery:     model.DeliveryLocal,
		Provider:     "unpkg",
		Minified:     true,
		Template:     "acme/tmpl#v2",
		CreatedAt:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, Save(dir, saved))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ConfigNotFound, cfgErr.Type)
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.ProjectConfigFile), []byte("{not json"), 0644))

	_, err := Load(dir)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ConfigInvalid, cfgErr.Type)
}

func TestDefaultProject(t *testing.T) {
	p := DefaultProject("demo")
	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, model.ModeGlobal, p.Mode)
	assert.Equal(t, model.DeliveryCDN, p.Delivery)
	assert.Equal(t, "jsdelivr", p.Provider)
	assert.True(t, p.Minified)
	assert.False(t, p.CreatedAt.IsZero())
}
