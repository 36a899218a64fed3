// Entrypoint for the Cobra CLI; all command handling lives in cmd/root.go.

package main

import (
	"github.com/qnetsim/qnetsim/cmd"
)

func main() {
	cmd.Execute()
}
