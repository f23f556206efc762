package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/claimsift/claimsift/internal/cli"
)

func main() {
	// Load API keys and overrides from a local .env if present
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
