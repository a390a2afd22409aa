package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/capgains/cmd"
	"github.com/google/subcommands"
)

func main() {
	// shell completion, see https://github.com/posener/complete
	cmd.Completion().Complete("cgt")

	commander := subcommands.NewCommander(flag.CommandLine, "cgt")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if name := flag.Arg(0); name != "" && !cmd.IsCommand(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
