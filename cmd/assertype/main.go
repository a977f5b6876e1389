package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/assertype"
	"github.com/broady/assertype/cmd/assertype/internal/check"
	"github.com/broady/assertype/cmd/assertype/internal/dump"
	"github.com/broady/assertype/cmd/assertype/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Fill in @assertype stubs with type guards."`
	Check   check.Cmd  `cmd:"" help:"Exit non-zero if any guard is missing or out of date."`
	Dump    dump.Cmd   `cmd:"" help:"Print resolved type declarations as JSON."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("assertype"),
		kong.Description("Generate TypeScript runtime type guards from type declarations."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "assertype: %s\n", assertype.Format(err))
		os.Exit(1)
	}
}
