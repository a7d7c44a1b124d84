package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"elf-lang/live/internal/live"
)

func main() {
	os.Exit(Main(os.Args, os.Stdout, os.Stderr))
}

// Main runs the elf tool and returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	app := cli.NewApp()
	app.Name = "elf"
	app.Usage = "Run elf scripts, once or live."
	app.Version = "v0.2"
	app.Writer = stdout
	app.ErrWriter = stderr

	app.Commands = []cli.Command{
		TokensCommandPattern(stdout),
		AstCommandPattern(stdout),
		RunCommandPattern(stdout),
		LiveCommandPattern(stdout, stderr),
	}

	app.CommandNotFound = func(ctx *cli.Context, command string) {
		fmt.Fprintf(stderr, "Incorrect usage: '%s %v' is not an elf subcommand\n", ctx.App.Name, command)
	}

	if err := app.Run(args); err != nil {
		if !Error.Contains(err) {
			// cli's own flag parsing errors
			err = BadArgs.Wrap(err)
		}
		fmt.Fprintf(stderr, "%s\n", live.Message(err))
		return exitCode(err)
	}
	return exitSuccess
}
