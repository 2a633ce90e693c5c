package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"joinframe/pkg/logging"
)

func main() {
	root := newRootCommand()
	err := root.Execute()
	_ = logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
}
