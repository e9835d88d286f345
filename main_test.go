package main

import (
	"testing"
)

// TestMain_Imports verifies that main package compiles and imports work.
// main() delegates to cmd.Execute, which calls os.Exit on error; the commands
// are tested in the cmd package.
func TestMain_Imports(t *testing.T) {
}
