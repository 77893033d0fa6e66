// cmd/versaas/main.go
//
// Entry point for the versaas binary. All behavior lives in the
// internal/cli command tree.
package main

import (
	"os"

	"github.com/blackrab369/Versaas-ai/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
