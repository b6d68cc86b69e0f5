package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"gittrainer/internal/cmd"
	"gittrainer/internal/version"
)

func main() {
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("gittrainer"),
		kong.Description("Interactive Git trainer: solve real Git scenarios in a disposable sandbox"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
