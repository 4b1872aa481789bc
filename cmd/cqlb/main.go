// Command cqlb compiles query definitions into CQL SELECT statements.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/cqlb/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
