package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmar008/dealaai/internal/cli/commands"
	"github.com/jmar008/dealaai/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError("%s", errMsg)
			fmt.Println("\nRun 'dealctl --help' for usage.")
		}
		os.Exit(1)
	}
}
