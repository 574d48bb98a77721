// Package keepalive serves the static landing page that keeps the web
// profile alive on hosts which expect an HTTP listener.
package keepalive

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/shutupbot/shutupbot/pkg/shutup"
)

//go:embed templates/*.html
var templateFS embed.FS

type indexData struct {
	Command string
	Count   int
}

type Server struct {
	addr     string
	log      *slog.Logger
	index    []byte
	notFound []byte
}

// New renders the pages up front; they never change afterwards.
func New(port int, log *slog.Logger) (*Server, error) {
	index, err := render("templates/index.html", indexData{Command: shutup.CommandName, Count: shutup.MentionCount})
	if err != nil {
		return nil, err
	}
	notFound, err := render("templates/404.html", nil)
	if err != nil {
		return nil, err
	}
	return &Server{
		addr:     fmt.Sprintf(":%d", port),
		log:      log,
		index:    index,
		notFound: notFound,
	}, nil
}

func render(name string, data any) ([]byte, error) {
	t, err := template.ParseFS(templateFS, name)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	return accessLog(s.log, mux)
}

// Run listens until ctx is done and then shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		w.Write(s.notFound)
		return
	}
	w.Write(s.index)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func accessLog(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(rec, r)
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip = r.RemoteAddr
		}
		log.Info("HTTP request",
			"ip", ip,
			"method", r.Method,
			"uri", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start),
			"user_agent", r.UserAgent(),
		)
	})
}
