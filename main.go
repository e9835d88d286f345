package main

import (
	"github.com/ColonelBlimp/cwclip/cmd"
	"github.com/ColonelBlimp/cwclip/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
