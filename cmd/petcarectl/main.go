package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tartampluch/go-petcare/internal/commands"
	"github.com/tartampluch/go-petcare/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := commands.New(commands.Runtime{}).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(config.ExitCodeError)
	}
}
