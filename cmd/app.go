// Package cmd implements the cgt command-line application.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		c.Register(cmd, "capital gains")
	}
	c.Register(&topicCmd{}, "documentation")
}

// Commands returns the capital gains subcommands.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&reportCmd{},
		&importCmd{},
		&explainCmd{},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file. Defaults to "+defaultConfigFile+" if it exists.")

// IsCommand reports whether name is a command of the commander.
func IsCommand(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		found = found || cmd.Name() == name
	})
	return found
}
