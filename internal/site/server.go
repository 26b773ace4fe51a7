// Package site serves a built documentation tree over HTTP for local
// preview.
package site

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"
)

// Config captures the settings for serving a built site.
type Config struct {
	Addr    string
	SiteDir string
}

// Serve starts an HTTP server that hosts the built site until the context
// is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("site: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("site: addr is required")
	}
	if info, err := os.Stat(cfg.SiteDir); err != nil {
		return err
	} else if !info.IsDir() {
		return errors.New("site: site dir is not a directory")
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: http.FileServer(http.Dir(cfg.SiteDir)),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
