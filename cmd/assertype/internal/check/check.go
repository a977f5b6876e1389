package check

import (
	"context"
	"fmt"

	"github.com/broady/assertype/cmd/assertype/internal/options"
	"github.com/broady/assertype/guardgen"
)

type Cmd struct {
	options.Options `embed:""`
}

func (c *Cmd) Run() error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}
	cfg.DryRun = true

	res, err := guardgen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	stale := res.Changed()
	for _, f := range stale {
		fmt.Printf("✗ %s: guards out of date\n", f.Path)
	}
	if len(stale) > 0 {
		return fmt.Errorf("%d of %d files need `assertype gen`", len(stale), len(res.Files))
	}

	guards := 0
	for _, f := range res.Files {
		guards += len(f.Guards)
	}
	fmt.Printf("✓ %d files, %d guards up to date\n", len(res.Files), guards)
	return nil
}
