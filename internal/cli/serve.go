package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/live-image-tracking-tools/gefftracks/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Expose tracks over HTTP for a viewer host",
		Long: `Expose a lineage file's tracks over HTTP.

The serve command decomposes the file once and serves the results to a
viewer host:

  GET /healthz        liveness probe
  GET /api/tracks     the full tracks table (rows, parents, axes)
  GET /api/tracklets  tracklet summaries (ID, member count, parents)

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd.Context(), args[0], addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Load(ctx, pipeline.Options{Input: input, Logger: loggerFromContext(ctx)})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.newRouter(result),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving tracks", "addr", addr, "file", input)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// trackletSummary is the /api/tracklets response element.
type trackletSummary struct {
	ID      int   `json:"id"`
	Members int   `json:"members"`
	Parents []int `json:"parents,omitempty"`
}

// newRouter builds the HTTP API for a loaded result.
func (c *CLI) newRouter(result *pipeline.Result) http.Handler {
	r := chi.NewRouter()
	r.Use(c.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/tracks", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, result.Tracks)
		})
		r.Get("/tracklets", func(w http.ResponseWriter, _ *http.Request) {
			members := make(map[int]int)
			for _, row := range result.Tracks.Rows {
				members[row.TrackletID]++
			}
			summaries := make([]trackletSummary, 0, len(members))
			for _, id := range result.Tracks.TrackletIDs() {
				summaries = append(summaries, trackletSummary{
					ID:      id,
					Members: members[id],
					Parents: result.Tracks.Parents[id],
				})
			}
			writeJSON(w, summaries)
		})
	})

	return r
}

// requestLogger assigns each request an ID and logs it with timing.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		c.Logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
