package main

import (
	"os"

	"log-analyzer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
