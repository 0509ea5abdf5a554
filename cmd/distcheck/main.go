// Package main provides the entry point for the dist bundle verification CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "distcheck",
	Short: "Static verification of packaged SDK build artifacts",
	Long:  "distcheck scans the packaged bundles in a dist directory and asserts release rules against them: global exports present, no dynamic evaluation, no forbidden dependencies, build-identity markers substituted, security guards retained.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
