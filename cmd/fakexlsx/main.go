package main

import (
	"fmt"
	"log"
	"os"

	"fakexlsx/internal/errors"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := newRootCmd(os.Stdin, os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.IsConfigError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
