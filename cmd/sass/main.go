// Command sass compiles Sass (SCSS or the indented syntax) to CSS
// (spec §6.2).
package main

import (
	"fmt"
	"os"

	"github.com/go-sass/sass/internal/cli"
)

func main() {
	cmd, exitCode := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if *exitCode == cli.ExitOK {
			*exitCode = cli.ExitUsage
		}
	}
	os.Exit(*exitCode)
}
