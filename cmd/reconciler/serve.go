package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reconciler/internal/demo"
	"github.com/vango-dev/reconciler/internal/errors"
	"github.com/vango-dev/reconciler/pkg/render"
)

const clickPath = "/api/click/"

func serveCmd() *cobra.Command {
	var (
		addr      string
		kind      string
		configDir string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the counter demo over HTTP",
		Long: `Serve the counter demo in a browser.

The root runs on its own executor goroutine. Clicks are posted to
/api/click/{id} and dispatched to the root; every commit is broadcast
to WebSocket clients connected to the stream path, and the page
refreshes itself when a frame arrives.

Endpoints:
  GET  /                 rendered page
  GET  /ws               commit stream (server.streamPath)
  POST /api/click/{id}   trigger a click handler
  GET  /metrics          Prometheus metrics (metrics.enabled)
  GET  /healthz          health check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configDir, kind)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Address()
			}

			a, err := newApp(cfg, os.Stderr, true)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runDone := make(chan struct{})
			go func() {
				defer close(runDone)
				if err := a.root.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
					a.logger.Error("executor stopped", "error", err)
				}
			}()

			if err := a.root.Do(ctx, func() error {
				return a.root.Mount(demo.App.El(demo.AppProps{}))
			}); err != nil {
				stop()
				<-runDone
				a.Close()
				return errors.FromRuntime(err)
			}

			var handler http.Handler = newRouter(a)
			if !quiet {
				handler = chimw.Logger(handler)
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			printBanner()
			success("Serving on http://%s", addr)
			info("Target:  %s", cfg.Target.Kind)
			info("Stream:  %s", cfg.Server.StreamPath)
			if a.registry == nil {
				warn("Metrics disabled")
			}

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.ListenAndServe()
			}()

			select {
			case err = <-serveErr:
				stop()
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				err = srv.Shutdown(shutdownCtx)
				cancel()
			}
			<-runDone
			closeErr := a.Close()

			if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return errors.New("R401").Wrap(err)
			}
			if closeErr != nil {
				return errors.New("R300").Wrap(closeErr)
			}
			info("Stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, localhost:8080)")
	cmd.Flags().StringVarP(&kind, "target", "t", "", "Render target kind (overrides config)")
	cmd.Flags().StringVarP(&configDir, "config", "c", ".", "Directory containing reconciler.json or reconciler.yaml")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable request logging")

	return cmd
}

// newRouter routes the demo endpoints. The app's root must be running its
// executor: every handler reaches the tree through root.Do.
func newRouter(a *app) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		page := render.PageData{
			Title:     "reconciler",
			ClickPath: clickPath,
		}
		if a.stream != nil {
			page.StreamPath = a.cfg.Server.StreamPath
		}

		var buf bytes.Buffer
		renderer := render.NewRenderer(render.RendererConfig{})
		err := a.root.Do(req.Context(), func() error {
			page.Body = a.root.Tree()
			return renderer.RenderPage(&buf, page)
		})
		if err != nil {
			a.logger.Error("page render failed", "error", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(buf.Bytes())
	})

	r.Post(clickPath+"{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		err := a.root.Do(req.Context(), func() error {
			return demo.Click(a.root, id)
		})
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case stderrors.Is(err, demo.ErrNoHandler):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			a.logger.Warn("click failed", "id", id, "error", err)
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		}
	})

	if a.stream != nil {
		r.Handle(a.cfg.Server.StreamPath, a.stream)
	}
	if a.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}
	return r
}
