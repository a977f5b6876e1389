package provider

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/ir"
)

// Loader parses units and the files they import. Imported units are
// cached by path, so each file is parsed at most once per Loader. A
// Loader is not safe for concurrent use; use one per unit being
// generated.
type Loader struct {
	// ReadFile reads imported files. Nil means os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	units map[string]*Unit
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{units: make(map[string]*Unit)}
}

// Parse parses src as the unit at path and caches it.
func (l *Loader) Parse(path string, src []byte) (*Unit, error) {
	u, err := Parse(path, src)
	if err != nil {
		return nil, err
	}
	l.units[filepath.Clean(path)] = u
	return u, nil
}

// Resolver returns a Resolver for declarations of u.
func (l *Loader) Resolver(u *Unit) *Resolver {
	return &Resolver{
		unit:     u,
		loader:   l,
		visiting: make(map[string]bool),
		resolved: make(map[string]ir.TypeDescriptor),
	}
}

// Close releases every unit the Loader parsed.
func (l *Loader) Close() {
	for _, u := range l.units {
		u.Close()
	}
	l.units = nil
}

var moduleExts = map[string]string{
	".js":  ".ts",
	".jsx": ".tsx",
	".mjs": ".mts",
	".cjs": ".cts",
}

// Import loads the unit a relative module specifier refers to, trying
// the extensions and index files TypeScript's resolver would.
func (l *Loader) Import(from *Unit, module string) (*Unit, error) {
	if !strings.HasPrefix(module, "./") && !strings.HasPrefix(module, "../") {
		return nil, assertype.Errorf(assertype.CodeUnresolvedReference,
			"cannot follow import of non-relative module '%s'", module)
	}
	base := filepath.Join(filepath.Dir(from.Path), filepath.FromSlash(module))

	var candidates []string
	ext := filepath.Ext(base)
	if ts, ok := moduleExts[ext]; ok {
		candidates = append(candidates, strings.TrimSuffix(base, ext)+ts)
	}
	switch ext {
	case ".ts", ".tsx", ".mts", ".cts":
		candidates = append(candidates, base)
	}
	candidates = append(candidates,
		base+".ts",
		base+".tsx",
		base+".d.ts",
		filepath.Join(base, "index.ts"),
		filepath.Join(base, "index.tsx"),
		filepath.Join(base, "index.d.ts"),
	)

	read := l.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	for _, path := range candidates {
		path = filepath.Clean(path)
		if u, ok := l.units[path]; ok {
			return u, nil
		}
		src, err := read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return l.Parse(path, src)
	}
	return nil, assertype.Errorf(assertype.CodeUnresolvedReference, "cannot find module '%s'", module)
}
