package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/lingo-backend/internal/app"
	"github.com/yungbote/lingo-backend/internal/platform/shutdown"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	if err := a.Start(ctx); err != nil {
		a.Log.Error("Failed to start background services", "error", err)
		os.Exit(1)
	}
	if err := a.Run(ctx); err != nil {
		a.Log.Error("Server exited", "error", err)
		os.Exit(1)
	}
	a.Log.Info("Server stopped")
}
