package options

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("flags override config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile("assertype.yaml", []byte("marker: guard\nparam: value\njobs: 4\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		o := &Options{Files: []string{filepath.Join(dir, "a.ts")}, Param: "x"}
		cfg, err := o.Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Marker != "guard" || cfg.Param != "x" || cfg.Jobs != 4 {
			t.Errorf("unexpected config %+v", cfg)
		}
		if cfg.Project != "" {
			t.Errorf("project = %q, want empty when files are given", cfg.Project)
		}
		if cfg.Logger == nil {
			t.Error("logger not set")
		}
	})

	t.Run("tsconfig in working directory", func(t *testing.T) {
		t.Chdir(t.TempDir())
		if err := os.WriteFile("tsconfig.json", []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := (&Options{}).Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Project != "tsconfig.json" {
			t.Errorf("project = %q", cfg.Project)
		}
	})

	t.Run("no input", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := (&Options{}).Load()
		if err == nil || !strings.Contains(err.Error(), "no input") {
			t.Errorf("error = %v, want no input", err)
		}
	})

	t.Run("explicit config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(t.TempDir())
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("files: [src/a.ts]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := (&Options{Config: path}).Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Root != dir || len(cfg.Files) != 1 {
			t.Errorf("unexpected config %+v", cfg)
		}
	})
}
