// Package imports translates foreign import and export statements into
// re-export use statements and maps module specifiers onto scope paths.
package imports

import (
	"strings"

	"martianoff/tsbind/internal/transpiler/sanitize"
)

// DefaultSuffix is appended to every scope name derived from a module,
// directory or namespace.
const DefaultSuffix = "Mod"

// Up is the parent-scope path segment.
const Up = "super"

// moduleExtensions are stripped from the last segment of a specifier. Longer
// suffixes come first so ".d.ts" wins over ".ts".
var moduleExtensions = []string{".d.mts", ".d.cts", ".d.ts", ".mjs", ".cjs", ".mts", ".cts", ".js", ".ts"}

// Namer maps foreign module and namespace names onto scope identifiers.
type Namer struct {
	Suffix string
}

// NewNamer returns a namer using suffix, or DefaultSuffix when suffix is empty.
func NewNamer(suffix string) Namer {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return Namer{Suffix: suffix}
}

// Scope returns the scope identifier for one module, file or namespace name.
func (n Namer) Scope(name string) string {
	return sanitize.Scope(TrimExtension(name) + n.Suffix)
}

// Prefix resolves a module specifier to a scope path relative to the unit
// that mentions it. Each "." is the parent scope, since a unit is itself a
// scope inside its directory. The first ".." climbs out of the unit and its
// directory; every further ".." climbs one more level.
func (n Namer) Prefix(specifier string) []string {
	var path []string
	firstUp := true
	for _, seg := range strings.Split(specifier, "/") {
		switch seg {
		case "":
		case ".":
			path = append(path, Up)
		case "..":
			path = append(path, Up)
			if firstUp {
				path = append(path, Up)
				firstUp = false
			}
		default:
			path = append(path, n.Scope(seg))
		}
	}
	return path
}

// IsRelative reports whether specifier names a file relative to the unit.
func IsRelative(specifier string) bool {
	return strings.HasPrefix(specifier, ".")
}

// TrimExtension strips a known script or declaration extension.
func TrimExtension(name string) string {
	for _, ext := range moduleExtensions {
		if trimmed, ok := strings.CutSuffix(name, ext); ok && trimmed != "" {
			return trimmed
		}
	}
	return name
}
