package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/models"
)

// Notice kinds, rendered as woocommerce-error / -message / -info blocks
const (
	NoticeError   = "error"
	NoticeMessage = "message"
	NoticeInfo    = "info"
)

// Notice is a flash message shown above the page content
type Notice struct {
	Kind  string
	Lines []template.HTML
}

// View is the data every page template receives
type View struct {
	Site      string
	Title     string
	BodyClass string
	CartCount int
	CartTotal int64
	LoggedIn  bool
	Notices   []Notice
	Data      any
}

// Renderer executes the storefront templates. Each page is parsed together
// with layout.html; a page that defines "document" replaces the layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *logrus.Entry
}

var templateFuncs = template.FuncMap{
	"rub":   models.FormatRub,
	"add":   func(a, b int) int { return a + b },
	"lower": strings.ToLower,
	"stars": func() []int { return []int{1, 2, 3, 4, 5} },
}

// NewRenderer parses every page under templates/ in fsys
func NewRenderer(fsys fs.FS, logger *logrus.Logger) (*Renderer, error) {
	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{
		pages:  make(map[string]*template.Template, len(names)),
		logger: logger.WithField("component", "renderer"),
	}
	for _, name := range names {
		page := strings.TrimSuffix(path.Base(name), ".html")
		if page == "layout" {
			continue
		}
		tmpl, err := template.New(page).Funcs(templateFuncs).ParseFS(fsys, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render writes page with the given status. The page is executed into a
// buffer first so a template error still yields a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, view View) {
	tmpl, ok := r.pages[page]
	if !ok {
		r.logger.WithField("page", page).Error("unknown template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	entry := "layout"
	if tmpl.Lookup("document") != nil {
		entry = "document"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, entry, view); err != nil {
		r.logger.WithError(err).WithField("page", page).Error("failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.WithError(err).Debug("client went away")
	}
}

// Has reports whether page was parsed
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}
