package cli

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidedeck/internal/config"
	"github.com/matzehuels/slidedeck/pkg/errors"
	"github.com/matzehuels/slidedeck/pkg/pipeline"
)

// serveCommand creates the serve command, which compiles a deck and serves
// the output directory for previewing in a browser.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <deck.yaml>",
		Short: "Compile a deck and serve it over HTTP",
		Long: `Compile a deck and serve the output directory over HTTP.

With --watch the deck is recompiled on every change; reload the browser to
see the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&c.flags.addr, "addr", config.DefaultAddr, "listen address")
	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, source string) error {
	cfg, err := c.loadConfig(cmd, source)
	if err != nil {
		return err
	}

	ctx := withLogger(cmd.Context(), c.Logger)
	runner := pipeline.NewRunner(c.Logger)

	if c.flags.watch {
		compileAndReport(ctx, runner, cfg, source)
	} else {
		res, err := compile(ctx, runner, cfg, source)
		if err != nil {
			return err
		}
		printResult(res)
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "listen on %s", cfg.Addr)
	}
	return c.serve(ctx, ln, cfg, func(ctx context.Context) error {
		if !c.flags.watch {
			return nil
		}
		return watchAndCompile(ctx, runner, cfg, source)
	})
}

// serve serves cfg.Output on ln until ctx is cancelled or background
// returns an error. background runs alongside the server.
func (c *CLI) serve(ctx context.Context, ln net.Listener, cfg config.Config, background func(context.Context) error) error {
	srv := &http.Server{
		Handler:           newRouter(cfg.Output, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %s at %s", cfg.Output, StyleLink.Render("http://"+ln.Addr().String()))

	errc := make(chan error, 2)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errc <- errors.Wrap(errors.ErrCodeIO, err, "serve")
		}
	}()
	go func() {
		if err := background(ctx); err != nil {
			errc <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case runErr = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.Logger.Warn("shutdown", "error", err)
	}
	return runErr
}

// newRouter serves the files under root. Responses are never cached so a
// reload always shows the latest compile.
func newRouter(root string, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(requestLogger(logger))

	r.Handle("/*", http.FileServer(http.Dir(root)))
	return r
}

// requestLogger logs each request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Microsecond),
			)
		})
	}
}
