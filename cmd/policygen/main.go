package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/policygen/cmd/policygen/commands"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Stdout: os.Stdout, Stderr: os.Stderr}

	parser := kong.Must(cli,
		kong.Name("policygen"),
		kong.Description("Generate privacy policies from questionnaire answers."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
