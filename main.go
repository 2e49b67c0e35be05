package main

import (
	"fmt"
	"os"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/tui"
)

// Quick offline play with default settings. cmd/game reads the environment.
func main() {
	if err := tui.Start(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
