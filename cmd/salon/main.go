package main

import (
	"log/slog"
	"os"

	"github.com/rushi-salon/salon/cmd/salon/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		slog.Default().Error("salon", slog.Any("error", err))
		os.Exit(1)
	}
}
