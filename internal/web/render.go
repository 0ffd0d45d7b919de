package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"muse/pkg/utils"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is what every template receives. Data holds the page-specific view.
type Page struct {
	Title   string
	User    *utils.Principal
	Flashes []Flash
	Data    any
}

// Renderer executes the embedded page templates. Each page is parsed
// together with base.html so they can all define "content".
type Renderer struct {
	pages map[string]*template.Template
	log   *zap.Logger
}

var funcs = template.FuncMap{
	"stars": func(rating int) string {
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	},
	"score": func(avg float64) string {
		return fmt.Sprintf("%.1f", avg)
	},
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"year": func(s string) string {
		if len(s) >= 4 {
			return s[:4]
		}
		return s
	},
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
}

func NewRenderer(log *zap.Logger) (*Renderer, error) {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, path := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		if name == "base" {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", path)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		pages: pages,
		log:   log.With(zap.String("component", "renderer")),
	}, nil
}

// Render writes the named page with status. Output is buffered so a
// template error still produces a clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := rd.pages[name]
	if !ok {
		rd.log.Error("Unknown template", zap.String("template", name))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		rd.log.Error("Failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
