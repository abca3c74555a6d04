package main

import (
	"os"

	"github.com/wonny/finsight/backend/cmd/finsight/commands"
)

// main is the entry point for the Finsight CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/finsight [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
