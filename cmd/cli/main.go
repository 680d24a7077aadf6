package main

import (
	"fmt"
	"os"

	"github.com/de-tools/commerce-atlas/pkg/runtime/terminal"
	"github.com/de-tools/commerce-atlas/pkg/services/metrics"
)

func main() {
	settings := metrics.DefaultSettings()

	cli := terminal.NewCLI(terminal.Options{
		Registry: metrics.NewRegistry(metrics.DefaultCalculators(settings)),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
