package main

import (
	"fmt"
	"os"

	"github.com/amrelfalogy/smarted/internal/cli"
)

func main() {
	app := cli.NewApp(cli.Options{})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
