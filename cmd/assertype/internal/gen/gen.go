package gen

import (
	"context"
	"fmt"

	"github.com/broady/assertype/cmd/assertype/internal/options"
	"github.com/broady/assertype/guardgen"
)

type Cmd struct {
	options.Options `embed:""`

	DryRun bool `help:"Report the files that would change without writing them." short:"n"`
}

func (c *Cmd) Run() error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}
	cfg.DryRun = c.DryRun

	res, err := guardgen.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	verb := "updated"
	if c.DryRun {
		verb = "would update"
	}
	for _, f := range res.Changed() {
		fmt.Printf("%s %s (%d guards)\n", verb, f.Path, len(f.Guards))
	}
	return nil
}
