package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/env"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
)

func main() {
	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Run command
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, env.FromOs(), filesystem.NewLocalFs())
	exitCode := cmd.Execute(ctx)
	cancel()
	os.Exit(exitCode)
}
