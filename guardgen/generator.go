// Package guardgen rewrites marker-tagged stub functions in TypeScript
// sources into runtime type guards for the types they are named after.
package guardgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/check"
	"github.com/broady/assertype/guardgen/ir"
	"github.com/broady/assertype/guardgen/patch"
	"github.com/broady/assertype/guardgen/provider"
	"github.com/broady/assertype/guardgen/typescript"
	"github.com/broady/assertype/internal/discover"
)

// Result is the outcome of a generation run.
type Result struct {
	// Files holds one entry per processed unit, in input order.
	Files []FileResult

	// Warnings are non-fatal issues, such as skipped generic declarations.
	Warnings []ir.Warning
}

// FileResult is the outcome for a single source unit.
type FileResult struct {
	// Path is the unit's path relative to Config.Root, slash-separated.
	Path string

	// Content is the unit after generation.
	Content []byte

	// Changed reports whether Content differs from the original.
	Changed bool

	// Guards lists the names of the guards written into the unit.
	Guards []string
}

// Changed returns the files whose content changed.
func (r *Result) Changed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Changed {
			out = append(out, f)
		}
	}
	return out
}

// Generate fills in the marker-tagged stubs of every configured unit.
// Units are processed concurrently. If any unit fails, nothing is written
// and the first error is returned. Unchanged units are not rewritten.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger

	paths, err := unitPaths(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	units := make([]unitResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := generateUnit(cfg, path)
			if err != nil {
				return assertype.InFile(err, path)
			}
			units[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("generation failed", "error", err)
		return nil, err
	}

	result := &Result{Files: make([]FileResult, len(units))}
	for i, u := range units {
		result.Files[i] = u.file
		result.Warnings = append(result.Warnings, u.warnings...)
	}
	for _, w := range result.Warnings {
		attrs := []any{"code", w.Code}
		if w.Source != nil {
			attrs = append(attrs, "file", w.Source.File, "line", w.Source.Line)
		}
		log.Warn(w.Message, attrs...)
	}

	changed := result.Changed()
	if !cfg.DryRun {
		for _, f := range changed {
			if err := cfg.Sink.WriteFile(ctx, f.Path, f.Content); err != nil {
				return nil, fmt.Errorf("writing %s: %w", f.Path, err)
			}
		}
	}
	log.Info("generation complete",
		"files", len(result.Files),
		"changed", len(changed),
		"dry_run", cfg.DryRun,
		"duration", time.Since(start))
	return result, nil
}

type unitResult struct {
	file     FileResult
	warnings []ir.Warning
}

// generateUnit parses one unit and replaces each of its stubs with a
// guard. It has its own loader, resolver and patcher.
func generateUnit(cfg *Config, path string) (unitResult, error) {
	log := cfg.Logger.With("file", path)
	start := time.Now()

	src, err := cfg.Sink.ReadFile(path)
	if err != nil {
		return unitResult{}, err
	}

	loader := provider.NewLoader()
	loader.ReadFile = func(name string) ([]byte, error) {
		return cfg.Sink.ReadFile(filepath.ToSlash(name))
	}
	defer loader.Close()

	u, err := loader.Parse(path, src)
	if err != nil {
		return unitResult{}, err
	}
	stubs, warnings, err := u.Stubs(cfg.Marker)
	if err != nil {
		return unitResult{}, err
	}

	resolver := loader.Resolver(u)
	p := patch.New(src)
	var guards []string
	for _, stub := range stubs {
		text, ok, err := guardText(cfg, resolver, stub)
		if err != nil {
			return unitResult{}, atLine(err, stub.Source.Line)
		}
		if !ok {
			log.Debug("no checks for type; stub left as is", "guard", stub.Name)
			continue
		}
		if err := p.Apply(patch.Edit{Start: stub.Start, End: stub.End, Text: text}); err != nil {
			return unitResult{}, atLine(err, stub.Source.Line)
		}
		guards = append(guards, stub.Name)
		log.Debug("guard generated", "guard", stub.Name)
	}

	out := p.Bytes()
	log.Debug("unit processed",
		"edits", len(guards),
		"duration", time.Since(start))
	return unitResult{
		file: FileResult{
			Path:    path,
			Content: out,
			Changed: !bytes.Equal(out, src),
			Guards:  guards,
		},
		warnings: warnings,
	}, nil
}

// guardText prints the guard for stub. It reports false when the type
// imposes no runtime constraint.
func guardText(cfg *Config, r *provider.Resolver, stub provider.Stub) (string, bool, error) {
	t, err := r.Resolve(stub.Name)
	if err != nil {
		return "", false, err
	}

	param := cfg.Param
	if stub.Directive.Options.Param != "" {
		param = stub.Directive.Options.Param
	}
	frags, err := check.Synthesize(typescript.Ident(param), t)
	if err != nil {
		return "", false, err
	}
	body, ok := frags.Conjoin()
	if !ok {
		return "", false, nil
	}
	return typescript.PrintGuard(typescript.Guard{
		Name:   stub.Name,
		Param:  param,
		Export: stub.Exported,
		Header: stub.Directive.Header(),
		Body:   body,
	}), true, nil
}

func atLine(err error, line int) error {
	var e *assertype.Error
	if !errors.As(err, &e) || line <= 0 {
		return err
	}
	if _, ok := e.Details["line"]; ok {
		return err
	}
	return e.WithDetail("line", line)
}

// unitPaths lists the units to process, relative to cfg.Root and
// slash-separated, without duplicates.
func unitPaths(cfg *Config) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) error {
		rel, err := relPath(cfg.Root, p)
		if err != nil {
			return err
		}
		if !seen[rel] {
			seen[rel] = true
			paths = append(paths, rel)
		}
		return nil
	}

	if cfg.Project != "" {
		proj, err := discover.Load(cfg.Project)
		if err != nil {
			return nil, err
		}
		cfg.Logger.Debug("project loaded", "config", proj.ConfigPath, "files", len(proj.Files))
		for _, f := range proj.Files {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range cfg.Files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(cfg.Root, f)
		}
		if err := add(f); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func relPath(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", assertype.Errorf(assertype.CodeInvalidConfig, "%s is outside the root directory %s", path, root)
	}
	return rel, nil
}

// Declarations parses the configured units and resolves every type
// declaration in them. Generic declarations resolve to an unsupported
// descriptor.
func Declarations(ctx context.Context, cfg *Config) ([]ir.Declaration, error) {
	cfg = applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	paths, err := unitPaths(cfg)
	if err != nil {
		return nil, err
	}

	var decls []ir.Declaration
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ds, err := unitDeclarations(cfg, path)
		if err != nil {
			return nil, assertype.InFile(err, path)
		}
		decls = append(decls, ds...)
	}
	return decls, nil
}

func unitDeclarations(cfg *Config, path string) ([]ir.Declaration, error) {
	src, err := cfg.Sink.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loader := provider.NewLoader()
	loader.ReadFile = func(name string) ([]byte, error) {
		return cfg.Sink.ReadFile(filepath.ToSlash(name))
	}
	defer loader.Close()

	u, err := loader.Parse(path, src)
	if err != nil {
		return nil, err
	}
	r := loader.Resolver(u)
	decls := u.Declarations()
	for i := range decls {
		t, err := r.Resolve(decls[i].Name)
		if err != nil {
			return nil, atLine(err, decls[i].Source.Line)
		}
		decls[i].Type = t
	}
	return decls, nil
}
