// Command pocketos runs the simulated handset shell.
//
// Usage:
//
//	pocketos serve --port 8000 --storage sqlite
//	pocketos catalog --dir ./apps
//	pocketos catalog search mail
package main

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/PocketOS/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
