package main

import (
	"os"

	"github.com/wonny/skinadvisor/backend/cmd/skin/commands"
)

// main is the entry point for the skin advisor CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/skin [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
