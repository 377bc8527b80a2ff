package main

import (
	"context"
	"os"

	"github.com/mmynk/guestlist/internal/cli"
	"github.com/mmynk/guestlist/pkg/logging"
)

func main() {
	logging.Setup()

	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
