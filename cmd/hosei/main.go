// Command hosei infers combo correction factors from recorded damage.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/hosei/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.ErrorReported(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
