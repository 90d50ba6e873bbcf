package app

import (
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// defaultGitignore covers editor droppings and local dependency copies that
// updates re-download.
const defaultGitignore = `.DS_Store
node_modules/
`

// initGitRepo initializes a git repository in dir and writes a .gitignore.
// An already-initialized directory is left alone.
func initGitRepo(dir string) error {
	if _, err := git.PlainInit(dir, false); err != nil {
		if err == git.ErrRepositoryAlreadyExists {
			return nil
		}
		return err
	}

	ignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(ignorePath); os.IsNotExist(err) {
		if err := os.WriteFile(ignorePath, []byte(defaultGitignore), 0644); err != nil {
			return err
		}
	}
	return nil
}
