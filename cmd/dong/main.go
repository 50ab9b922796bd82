package main

import (
	"os"

	"github.com/ydg06081/dong/cmd/dong/commands"
)

// main is the entry point for the dong CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/dong [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
