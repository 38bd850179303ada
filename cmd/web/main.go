package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"data-agent/internal/app"
	"data-agent/internal/clipboard"
	"data-agent/internal/web"
)

func main() {
	apiURL := flag.String("api", "", "answer service base URL (overrides API_URL)")
	flag.Parse()

	deps, err := app.BuildClient(os.Stdout, *apiURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", deps.Config.WebPort),
		Handler: web.New(deps.Client, clipboard.System{}, deps.Log).Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Log.Info("web client listening", "addr", srv.Addr, "backend", deps.Client.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("web client stopped", "err", err)
	}
}
