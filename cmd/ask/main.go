package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"data-agent/internal/app"
	"data-agent/internal/repl"
)

func main() {
	fs := flag.NewFlagSet("ask", flag.ContinueOnError)
	apiURL := fs.String("api", "", "answer service base URL (overrides API_URL)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: ask [-api URL] [question...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	deps, err := app.BuildClient(os.Stderr, *apiURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := repl.New(deps.Client, deps.Log)
	if fs.NArg() > 0 {
		if !console.Ask(ctx, strings.Join(fs.Args(), " ")) {
			os.Exit(1)
		}
		return
	}
	console.Run(ctx)
}
