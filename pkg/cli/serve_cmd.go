package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"apidocs/internal/config"
)

func newServeCmd(configPath *string) *cobra.Command {
	var (
		host     string
		port     int
		openPage bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated documentation over HTTP",
		Long: `Serve exposes the documentation root (the directory holding index.html and
the version snapshots) as a static site for local preview.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			docsRoot := filepath.Dir(cfg.OutputDir)
			if _, err := os.Stat(filepath.Join(docsRoot, "index.html")); err != nil {
				return fmt.Errorf("no documentation found in %s, run generate first", docsRoot)
			}
			return serveDocs(cmd.Context(), docsRoot, host, port, openPage)
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost", "Host interface to bind")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	cmd.Flags().BoolVar(&openPage, "open", false, "Open the index in the default browser")

	return cmd
}

func serveDocs(ctx context.Context, docsRoot, host string, port int, openPage bool) error {
	router := chi.NewRouter()
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Handle("/*", http.FileServer(http.Dir(docsRoot)))

	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	url := fmt.Sprintf("http://%s/", addr)
	slog.Info("serving documentation", "root", docsRoot, "url", url)
	if openPage {
		if err := openBrowser(url); err != nil {
			slog.Warn("failed to open browser", "error", err)
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
