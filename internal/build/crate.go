package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// CargoFileName marks the root of a Rust crate.
const CargoFileName = "Cargo.toml"

// Crate is the Rust crate that owns a declaration tree.
type Crate struct {
	// Root is the directory holding Cargo.toml.
	Root string
	// Name is [package].name, empty for a virtual workspace manifest.
	Name string
}

// CrateNotFoundError is returned when no Cargo.toml encloses the input.
type CrateNotFoundError struct {
	Path string
}

func (e *CrateNotFoundError) Error() string {
	return "declarations are not inside a crate: " + e.Path
}

// FindCrateRoot walks up from startPath looking for Cargo.toml.
func FindCrateRoot(startPath string) (*Crate, error) {
	dir, err := filepath.Abs(startPath)
	if err != nil {
		return nil, err
	}

	// If startPath is a file, use its directory
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		manifest := filepath.Join(dir, CargoFileName)
		if info, err := os.Stat(manifest); err == nil && !info.IsDir() {
			tree, err := toml.LoadFile(manifest)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", manifest, err)
			}
			crate := &Crate{Root: dir}
			if name, ok := tree.Get("package.name").(string); ok {
				crate.Name = name
			}
			return crate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, &CrateNotFoundError{Path: startPath}
		}
		dir = parent
	}
}
