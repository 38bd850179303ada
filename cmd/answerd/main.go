package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"data-agent/internal/answer"
	"data-agent/internal/app"
	"data-agent/internal/chart"
	"data-agent/internal/httputil"
	"data-agent/internal/sqlguard"
	"data-agent/internal/store"
)

type askRequest struct {
	Query string `json:"query" validate:"required"`
}

func main() {
	deps, err := app.BuildService()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", deps.Config.Port),
		Handler: newRouter(deps),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Log.Info("answer service listening", "addr", srv.Addr, "origins", deps.Config.AllowedOrigins)
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
		deps.Log.Error("answer service stopped", "err", err)
	}
}

func newRouter(deps app.ServiceDeps) chi.Router {
	r := httputil.NewRouter(deps.Log)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/ask", askHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	return r
}

func askHandler(deps app.ServiceDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Detail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		ctx := r.Context()
		log := deps.Log.With("question", req.Query)

		tables, err := deps.Store.Schema(ctx)
		if err != nil {
			// The demo translator does not need a schema; a model will do worse without one.
			log.Warn("schema lookup failed", "err", err)
		}

		tr, err := deps.Translator.Translate(ctx, req.Query, describeSchema(tables))
		if err != nil {
			httputil.Detail(log, w, "translation failed", err, http.StatusBadGateway)
			return
		}

		if sqlguard.IsDestructive(tr.SQL) {
			httputil.Detail(log, w, "Destructive SQL is not allowed.", nil, http.StatusBadRequest)
			return
		}

		res, err := deps.Store.Query(ctx, tr.SQL)
		if err != nil {
			httputil.Detail(log, w, "SQL execution failed: "+err.Error(), err, http.StatusBadRequest)
			return
		}

		log.Info("answered", "rows", len(res.Rows))
		httputil.WriteJSON(w, http.StatusOK, buildResponse(tr.SQL, tr.Summary, res))
	}
}

func buildResponse(sql, summary string, res store.Result) answer.Response {
	rows := res.Rows
	if rows == nil {
		rows = []answer.Row{}
	}
	return answer.Response{
		SQL:     sql,
		Summary: summary,
		Columns: res.Columns,
		Rows:    rows,
		Chart:   chart.Suggest(res.Columns, rows),
	}
}

// describeSchema renders tables one per line as name(col, col, ...).
func describeSchema(tables []store.Table) string {
	lines := make([]string, len(tables))
	for i, t := range tables {
		lines[i] = fmt.Sprintf("%s(%s)", t.Name, strings.Join(t.Columns, ", "))
	}
	return strings.Join(lines, "\n")
}
