// Command rqc is the ReqCraft CLI: scaffold, parse, and serve .rqc API
// definitions.
package main

import (
	"fmt"
	"os"

	"github.com/reqcraft/rqc/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
