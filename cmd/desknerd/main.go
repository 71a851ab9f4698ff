// deskNERD executes typed operations against the local machine: file
// reads and writes, browser navigation, app control, settings queries,
// and shell commands, each gated by admission control and tracked to a
// terminal state.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
