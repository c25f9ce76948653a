package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"
	"time"
)

// renderLanding converts the embedded markdown sections, in file-name order.
func renderLanding() ([]template.HTML, error) {
	names, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)

	sections := make([]template.HTML, 0, len(names))
	for _, name := range names {
		src, err := fs.ReadFile(contentFS, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := mdRenderer.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		sections = append(sections, template.HTML(buf.String()))
	}
	return sections, nil
}

// handleLanding handles GET /.
func (s *server) handleLanding(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "landing.html", map[string]any{"Sections": s.landing})
}

// handleHealthz handles GET /healthz. The storage backend is pinged when it supports it.
func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.opts.Health.Ping(ctx); err != nil {
			slog.Error("health_event", "event", "storage_unreachable", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
