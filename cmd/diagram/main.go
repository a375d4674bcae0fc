package main

import (
	"fmt"
	"os"

	"github.com/v0idhrt/boxdiagram/cmd/diagram/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
