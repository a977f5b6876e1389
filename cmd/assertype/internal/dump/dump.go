package dump

import (
	"context"
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/broady/assertype/cmd/assertype/internal/options"
	"github.com/broady/assertype/guardgen"
	"github.com/broady/assertype/guardgen/ir"
)

type Cmd struct {
	options.Options `embed:""`

	Type []string `help:"Only print the named declarations." short:"t"`
}

func (c *Cmd) Run() error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}
	decls, err := guardgen.Declarations(context.Background(), cfg)
	if err != nil {
		return err
	}
	decls = filter(decls, c.Type)
	if len(c.Type) > 0 && len(decls) == 0 {
		return fmt.Errorf("no declarations named %v", c.Type)
	}
	if err := json.MarshalWrite(os.Stdout, decls, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func filter(decls []ir.Declaration, names []string) []ir.Declaration {
	if len(names) == 0 {
		return decls
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []ir.Declaration
	for _, d := range decls {
		if want[d.Name] {
			out = append(out, d)
		}
	}
	return out
}
