package app

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed scaffolds/*
var scaffoldsFS embed.FS

// AvailableScaffolds returns the list of built-in starter names.
func AvailableScaffolds() ([]string, error) {
	entries, err := scaffoldsFS.ReadDir("scaffolds")
	if err != nil {
		return nil, fmt.Errorf("failed to read scaffolds directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// copyScaffold writes a built-in starter into targetDir.
func copyScaffold(name, targetDir string) error {
	root := "scaffolds/" + name
	if _, err := scaffoldsFS.ReadDir(root); err != nil {
		available, _ := AvailableScaffolds()
		return NewValidationError(
			fmt.Sprintf("unknown starter: %s (available: %v)", name, available), err)
	}

	return fs.WalkDir(scaffoldsFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		target := filepath.Join(targetDir, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := scaffoldsFS.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
}
