// Package options holds the flags shared by the assertype subcommands.
package options

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/broady/assertype/guardgen"
)

// Options selects the units to process and tunes generation. Flags
// override the configuration file.
type Options struct {
	Project string   `help:"Path to tsconfig.json (default: ./tsconfig.json when no files are given)." short:"p" type:"path"`
	Config  string   `help:"Configuration file (default: ./assertype.yaml if present)." short:"c" type:"path"`
	Marker  string   `help:"JSDoc tag that marks stubs." placeholder:"assertype"`
	Param   string   `help:"Parameter name of generated guards." placeholder:"v"`
	Jobs    int      `help:"Number of files processed at once (default: number of CPUs)." short:"j"`
	Verbose bool     `help:"Log per-guard progress." short:"v"`
	Files   []string `arg:"" optional:"" help:"Source files to process." type:"path"`
}

// Logger returns a text logger on stderr.
func (o *Options) Logger() *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Load builds the generation config from the configuration file and the
// flags.
func (o *Options) Load() (*guardgen.Config, error) {
	base := &guardgen.Config{}
	path := o.Config
	if path == "" {
		if _, err := os.Stat(guardgen.ConfigFile); err == nil {
			path = guardgen.ConfigFile
		}
	}
	if path != "" {
		cfg, err := guardgen.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		base = cfg
	}

	cfg := base.Merge(&guardgen.Config{
		Project: o.Project,
		Files:   o.Files,
		Marker:  o.Marker,
		Param:   o.Param,
		Jobs:    o.Jobs,
		Logger:  o.Logger(),
	})
	if cfg.Project == "" && len(cfg.Files) == 0 {
		if _, err := os.Stat("tsconfig.json"); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errors.New("no input: pass files, --project, or run in a directory with tsconfig.json")
			}
			return nil, err
		}
		cfg.Project = "tsconfig.json"
	}
	return cfg, nil
}
