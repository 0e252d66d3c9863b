package main

import (
	"os"

	"github.com/bnema/repobrief/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	os.Exit(cmd.Execute())
}
