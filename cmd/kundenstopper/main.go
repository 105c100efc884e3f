package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"kundenstopper/cmd/kundenstopper/commands"
)

// @title Kundenstopper API
// @version 1.0
// @BasePath /
func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
