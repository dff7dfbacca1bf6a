// Command ias is the investment advisory system: a risk questionnaire,
// instrument recommendations and a simulated portfolio.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"

	"github.com/etnz/advisor/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("ias")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}

	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if ok, code := cmd.RunExtension(sub, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered reports whether name is a known subcommand.
func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(g *subcommands.CommandGroup, s subcommands.Command) {
		if s.Name() == name {
			found = true
		}
	})
	return found
}
