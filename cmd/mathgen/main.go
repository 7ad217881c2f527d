// Command mathgen resolves fractal terrain configurations and samples them
// into voxel regions.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mathgen: %v\n", err)
		os.Exit(1)
	}
}
