package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/shopspring/decimal"

	"payroll/internal/domain/payroll"
	"payroll/internal/requestctx"
)

// Page is the value every template receives.
type Page struct {
	Title               string
	Session             requestctx.Session
	Authenticated       bool
	RegistrationEnabled bool
	Data                any
}

type Renderer struct {
	pages               map[string]*template.Template
	registrationEnabled bool
}

var funcs = template.FuncMap{
	"money": payroll.FormatMoney,
	"net": func(amount decimal.NullDecimal) string {
		if !amount.Valid {
			return "n/a"
		}
		return payroll.FormatMoney(amount.Decimal)
	},
}

// New parses templates/layout.html together with each file under
// templates/pages. Pages are addressed by file name without extension.
func New(fsys fs.FS, registrationEnabled bool) (*Renderer, error) {
	layout, err := template.New("layout").Funcs(funcs).ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	files, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		tmpl, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}
	return &Renderer{pages: pages, registrationEnabled: registrationEnabled}, nil
}

// Page builds the template value for r, filling in the session identity.
func (rd *Renderer) Page(r *http.Request, title string, data any) Page {
	session, ok := requestctx.GetSession(r.Context())
	return Page{
		Title:               title,
		Session:             session,
		Authenticated:       ok,
		RegistrationEnabled: rd.registrationEnabled,
		Data:                data,
	}
}

func (rd *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	tmpl, ok := rd.pages[name]
	if !ok {
		slog.ErrorContext(r.Context(), "unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", rd.Page(r, title, data)); err != nil {
		slog.ErrorContext(r.Context(), "render template failed", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error renders the generic error page.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	rd.HTML(w, r, status, "error", http.StatusText(status), message)
}
