package guardgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/broady/assertype"
	"github.com/broady/assertype/guardgen/sink"
	"github.com/broady/assertype/guardgen/typescript"
	"github.com/broady/assertype/internal/directive"
)

// ConfigFile is the name of the optional configuration file looked up
// in the working directory.
const ConfigFile = "assertype.yaml"

// Config holds the configuration for guard generation.
type Config struct {
	// Root is the directory that Files and the sink's paths are relative
	// to. Default: the directory of Project when set, else the working
	// directory.
	Root string `yaml:"root"`

	// Project is the path of a tsconfig.json whose source files are
	// processed. e.g. "./tsconfig.json"
	Project string `yaml:"project" validate:"required_without=Files"`

	// Files are source units processed in addition to the project's.
	// e.g. []string{"src/types.ts"}
	Files []string `yaml:"files" validate:"required_without=Project,dive,required"`

	// Marker is the JSDoc tag that opts a stub into generation.
	// Default: "assertype"
	Marker string `yaml:"marker" validate:"required,jsident"`

	// Param is the name of the generated guard's parameter, unless a
	// directive overrides it.
	// Default: "v"
	Param string `yaml:"param" validate:"required,jsident"`

	// Jobs bounds the number of units processed at once.
	// Default: runtime.GOMAXPROCS(0)
	Jobs int `yaml:"jobs" validate:"gte=0"`

	// DryRun computes the results without writing any file.
	DryRun bool `yaml:"dryRun"`

	// Logger receives progress and per-guard debug output.
	// Default: slog.Default()
	Logger *slog.Logger `yaml:"-" validate:"-"`

	// Sink reads the source units and receives rewritten ones.
	// Default: a FilesystemSink at Root.
	Sink sink.Workspace `yaml:"-" validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("jsident", func(fl validator.FieldLevel) bool {
		return typescript.IsBindingName(fl.Field().String())
	})
	return v
}

// LoadConfig reads a YAML configuration file. Relative paths in the file
// are relative to the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if cfg.Root == "" {
		cfg.Root = dir
	} else if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(dir, cfg.Root)
	}
	if cfg.Project != "" && !filepath.IsAbs(cfg.Project) {
		cfg.Project = filepath.Join(dir, cfg.Project)
	}
	return cfg, nil
}

// ParseConfig decodes YAML configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, assertype.NewError(assertype.CodeInvalidConfig, err.Error())
	}
	return &cfg, nil
}

// Merge returns a copy of c with every non-zero field of o applied.
func (c *Config) Merge(o *Config) *Config {
	result := *c
	if o == nil {
		return &result
	}
	if o.Root != "" {
		result.Root = o.Root
	}
	if o.Project != "" {
		result.Project = o.Project
	}
	if len(o.Files) > 0 {
		result.Files = append([]string(nil), o.Files...)
	}
	if o.Marker != "" {
		result.Marker = o.Marker
	}
	if o.Param != "" {
		result.Param = o.Param
	}
	if o.Jobs != 0 {
		result.Jobs = o.Jobs
	}
	if o.DryRun {
		result.DryRun = true
	}
	if o.Logger != nil {
		result.Logger = o.Logger
	}
	if o.Sink != nil {
		result.Sink = o.Sink
	}
	return &result
}

// Validate reports configuration errors as validator.ValidationErrors.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Root == "" {
		if result.Project != "" {
			result.Root = projectDir(result.Project)
		} else {
			result.Root = "."
		}
	}
	if result.Marker == "" {
		result.Marker = directive.DefaultMarker
	}
	if result.Param == "" {
		result.Param = typescript.DefaultParam
	}
	if result.Jobs == 0 {
		result.Jobs = runtime.GOMAXPROCS(0)
	}
	if result.Logger == nil {
		result.Logger = slog.Default()
	}
	if result.Sink == nil {
		result.Sink = sink.NewFilesystemSink(result.Root)
	}
	return &result
}

// projectDir returns the directory of a tsconfig path, which may itself
// name a directory.
func projectDir(project string) string {
	if info, err := os.Stat(project); err == nil && info.IsDir() {
		return project
	}
	return filepath.Dir(project)
}
