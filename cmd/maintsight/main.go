// main is the entrypoint for the maintsight CLI.
package main

import (
	"fmt"
	"os"

	"github.com/techdebtgpt/maintsight/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
