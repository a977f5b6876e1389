package guardgen

import (
	"context"
	"log/slog"

	"github.com/broady/assertype/guardgen/sink"
)

// Generator provides a fluent API for guard generation.
// Create with FromProject() or FromFiles() and configure with method chaining.
//
// Example:
//
//	guardgen.FromProject("./tsconfig.json").
//	    Marker("guard").
//	    Generate(ctx)
type Generator struct {
	cfg Config
}

// FromProject creates a Generator for the sources of a tsconfig.json.
func FromProject(tsconfig string) *Generator {
	return &Generator{cfg: Config{Project: tsconfig}}
}

// FromFiles creates a Generator for an explicit list of source units.
func FromFiles(files ...string) *Generator {
	return &Generator{cfg: Config{Files: files}}
}

// Files adds source units to process.
func (g *Generator) Files(files ...string) *Generator {
	g.cfg.Files = append(g.cfg.Files, files...)
	return g
}

// Root sets the directory unit paths are relative to.
func (g *Generator) Root(dir string) *Generator {
	g.cfg.Root = dir
	return g
}

// Marker sets the JSDoc tag that selects stubs.
func (g *Generator) Marker(name string) *Generator {
	g.cfg.Marker = name
	return g
}

// Param sets the guard parameter name.
func (g *Generator) Param(name string) *Generator {
	g.cfg.Param = name
	return g
}

// Jobs bounds the number of units processed at once.
func (g *Generator) Jobs(n int) *Generator {
	g.cfg.Jobs = n
	return g
}

// WithLogger sets the logger.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// WithSink reads and writes units through s instead of the filesystem.
func (g *Generator) WithSink(s sink.Workspace) *Generator {
	g.cfg.Sink = s
	return g
}

// DryRun disables writing; Generate still reports what would change.
func (g *Generator) DryRun() *Generator {
	g.cfg.DryRun = true
	return g
}

// Config returns a copy of the accumulated configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate runs generation and writes changed units.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	cfg := g.cfg
	return Generate(ctx, &cfg)
}
