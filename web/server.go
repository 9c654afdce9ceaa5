// Package web serves the advisor as a browser page plus a small JSON API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ftahirops/ncdadvisor/engine"
	"github.com/ftahirops/ncdadvisor/model"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Deps holds the handler dependencies.
type Deps struct {
	Analyzer       engine.Analyzer
	Templates      *template.Template
	AllowedOrigins []string
}

// New wires a Deps around a with the embedded page templates.
func New(a engine.Analyzer, allowedOrigins []string) *Deps {
	return &Deps{
		Analyzer:       a,
		Templates:      loadTemplates(),
		AllowedOrigins: allowedOrigins,
	}
}

func loadTemplates() *template.Template {
	funcMap := template.FuncMap{
		// JSON for embedding data in JS
		"json": func(v any) template.JS {
			b, _ := json.Marshal(v)
			return template.JS(b)
		},
		"label": func(f model.Field) string { return f.Label() },
		// step attribute for a number input; "" keeps the browser default
		"step": func(f model.Field) string {
			if f == model.FieldCalories {
				return ""
			}
			return "0.1"
		},
	}
	return template.Must(template.New("page.html").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
}

// Handler returns the routed handler with CORS and request logging applied.
func (d *Deps) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", d.HandlePage).Methods("GET")
	r.HandleFunc("/", d.HandleSubmit).Methods("POST")
	r.HandleFunc("/theme", d.HandleTheme).Methods("POST")
	r.HandleFunc("/api/analyze", d.HandleAnalyze).Methods("POST")
	r.HandleFunc("/healthz", handleHealth).Methods("GET")

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	return c.Handler(loggingMiddleware(r))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type requestLogKey struct{}

// loggingMiddleware tags every request with an ID (the caller's X-Request-ID
// when present) and logs method, path, status and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(context.WithValue(r.Context(), requestLogKey{}, id))

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		slog.Info("http request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start))
	})
}

// requestLogID returns the ID assigned by loggingMiddleware.
func requestLogID(ctx context.Context) string {
	id, _ := ctx.Value(requestLogKey{}).(string)
	return id
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// Serve runs h on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return serve(ctx, ln, h)
}

func serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
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
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
