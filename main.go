// The main package for the cageharvest executable.
package main

import (
	"github.com/fightlytics/cageharvest/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
