// Package discover lists the source files of a TypeScript project.
//
// It reads tsconfig.json the way tsc does for file selection: comments
// and trailing commas are allowed, "extends" chains are followed, and the
// "files", "include" and "exclude" lists select TypeScript sources under
// the project directory. Compiler options other than outDir are ignored.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-json-experiment/json"
	"github.com/tailscale/hujson"
)

// Project is a loaded tsconfig.json.
type Project struct {
	// ConfigPath is the absolute path of the tsconfig file.
	ConfigPath string

	// Dir is the directory containing the tsconfig file.
	Dir string

	// Files are the absolute paths of the selected source files, sorted.
	Files []string

	// OutDir is the absolute compiler output directory, if set.
	OutDir string
}

// tsconfig holds the fields of a tsconfig file that affect file
// selection. Nil lists were not specified.
type tsconfig struct {
	Extends         any       `json:"extends"`
	Files           *[]string `json:"files"`
	Include         *[]string `json:"include"`
	Exclude         *[]string `json:"exclude"`
	CompilerOptions struct {
		OutDir string `json:"outDir"`
	} `json:"compilerOptions"`
}

// resolved is a tsconfig with its lists made absolute and inheritance
// applied.
type resolved struct {
	files, include, exclude *[]string
	outDir                  string
}

var defaultExclude = []string{"node_modules", "bower_components", "jspm_packages"}

// Load reads the tsconfig file at path and returns the project it
// describes. A directory path means its tsconfig.json.
func Load(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		abs = filepath.Join(abs, "tsconfig.json")
	}

	cfg, err := load(abs, map[string]bool{})
	if err != nil {
		return nil, err
	}

	p := &Project{
		ConfigPath: abs,
		Dir:        filepath.Dir(abs),
		OutDir:     cfg.outDir,
	}
	p.Files, err = selectFiles(p.Dir, cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func load(path string, seen map[string]bool) (*resolved, error) {
	if seen[path] {
		return nil, fmt.Errorf("tsconfig: circular extends through %s", path)
	}
	seen[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tsconfig: %w", err)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("tsconfig: %s: %w", path, err)
	}
	var raw tsconfig
	if err := json.Unmarshal(std, &raw); err != nil {
		return nil, fmt.Errorf("tsconfig: %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	out := &resolved{}
	for _, ext := range extendsList(raw.Extends) {
		basePath, err := resolveExtends(dir, ext)
		if err != nil {
			return nil, err
		}
		base, err := load(basePath, seen)
		if err != nil {
			return nil, err
		}
		out.inherit(base)
	}

	if raw.Files != nil {
		out.files = absAll(dir, *raw.Files)
	}
	if raw.Include != nil {
		out.include = absAll(dir, *raw.Include)
	}
	if raw.Exclude != nil {
		out.exclude = absAll(dir, *raw.Exclude)
	}
	if raw.CompilerOptions.OutDir != "" {
		out.outDir = filepath.Join(dir, raw.CompilerOptions.OutDir)
	}
	return out, nil
}

// inherit copies every setting of base; the caller then overrides with its
// own.
func (r *resolved) inherit(base *resolved) {
	if base.files != nil {
		r.files = base.files
	}
	if base.include != nil {
		r.include = base.include
	}
	if base.exclude != nil {
		r.exclude = base.exclude
	}
	if base.outDir != "" {
		r.outDir = base.outDir
	}
}

func extendsList(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []any:
		var out []string
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// resolveExtends finds the file an "extends" value names: a path relative
// to dir, or a package under node_modules.
func resolveExtends(dir, ext string) (string, error) {
	var candidates []string
	if strings.HasPrefix(ext, ".") || filepath.IsAbs(ext) {
		base := ext
		if !filepath.IsAbs(base) {
			base = filepath.Join(dir, ext)
		}
		candidates = append(candidates, base)
		if filepath.Ext(base) != ".json" {
			candidates = append(candidates, base+".json")
		}
	} else {
		for d := dir; ; d = filepath.Dir(d) {
			base := filepath.Join(d, "node_modules", filepath.FromSlash(ext))
			candidates = append(candidates, base, base+".json", filepath.Join(base, "tsconfig.json"))
			if filepath.Dir(d) == d {
				break
			}
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("tsconfig: cannot find base config %q", ext)
}

func absAll(dir string, paths []string) *[]string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = filepath.Clean(p)
		} else {
			out[i] = filepath.Join(dir, filepath.FromSlash(p))
		}
	}
	return &out
}

func selectFiles(dir string, cfg *resolved) ([]string, error) {
	selected := map[string]bool{}

	if cfg.files != nil {
		for _, f := range *cfg.files {
			if _, err := os.Stat(f); err != nil {
				return nil, fmt.Errorf("tsconfig: file %s: %w", f, err)
			}
			selected[f] = true
		}
	}

	include := []string{filepath.Join(dir, "**", "*")}
	switch {
	case cfg.include != nil:
		include = *cfg.include
	case cfg.files != nil:
		include = nil
	}

	var exclude []string
	if cfg.exclude != nil {
		exclude = *cfg.exclude
	} else {
		for _, e := range defaultExclude {
			exclude = append(exclude, filepath.Join(dir, e))
		}
		if cfg.outDir != "" {
			exclude = append(exclude, cfg.outDir)
		}
	}

	for _, pattern := range include {
		matches, err := glob(directoryPattern(pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if isSource(m) && !excluded(m, exclude) {
				selected[m] = true
			}
		}
	}

	files := make([]string, 0, len(selected))
	for f := range selected {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// directoryPattern expands a pattern naming a directory to everything
// beneath it.
func directoryPattern(pattern string) string {
	last := filepath.Base(pattern)
	if strings.ContainsAny(last, "*?") || filepath.Ext(last) != "" {
		return pattern
	}
	return filepath.Join(pattern, "**", "*")
}

func glob(pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	matches, err := doublestar.Glob(os.DirFS(filepath.FromSlash(base)), rest)
	if err != nil {
		return nil, fmt.Errorf("tsconfig: pattern %q: %w", pattern, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		path := filepath.Join(filepath.FromSlash(base), filepath.FromSlash(m))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		out = append(out, path)
	}
	return out, nil
}

func excluded(path string, exclude []string) bool {
	slash := filepath.ToSlash(path)
	for _, e := range exclude {
		pattern := filepath.ToSlash(e)
		if ok, _ := doublestar.Match(pattern, slash); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern+"/**", slash); ok {
			return true
		}
	}
	return false
}

var sourceExts = []string{".ts", ".tsx", ".mts", ".cts"}

// isSource reports whether path is a TypeScript source file. Declaration
// files are not sources.
func isSource(path string) bool {
	name := filepath.Base(path)
	for _, ext := range sourceExts {
		if strings.HasSuffix(name, ".d"+ext) {
			return false
		}
	}
	for _, ext := range sourceExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Rel returns path relative to the project directory, slash-separated.
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.Dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
