// Package web serves the three LawSnap pages: rare law finder, lawyer
// assistance and the law quiz.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lawsnap/internal/advisor"
	"lawsnap/internal/app"
	"lawsnap/internal/httputil"
	"lawsnap/internal/insight"
	"lawsnap/internal/quiz"
	"lawsnap/internal/render"
	"lawsnap/internal/session"
	"lawsnap/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const historyLimit = 10

// Handler owns the page templates and the services behind each page.
type Handler struct {
	deps    app.Deps
	log     *slog.Logger
	finder  *insight.Finder
	advisor *advisor.Advisor
	quizzes *quiz.Generator
	pages   map[string]*template.Template
}

// page is the data every template receives; each page uses its own subset.
type page struct {
	Title  string
	Active string
	Error  string

	Professions []string
	Languages   []string
	Profession  string
	Language    string
	Output      string

	Query  string
	Advice *advisor.Advice

	Session  *session.Session
	Answered bool
	Outcome  *session.Outcome
	History  []store.Attempt
}

// New builds the handler and parses the embedded templates.
func New(deps app.Deps) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(deps.Config.CacheTTL) * time.Second
	return &Handler{
		deps:    deps,
		log:     deps.Log,
		finder:  insight.NewFinder(deps.Laws, deps.LLM, deps.Cache, ttl, deps.Config.LLMModel, deps.Log),
		advisor: advisor.New(deps.LLM, deps.Lawyers, deps.Log),
		quizzes: quiz.NewGenerator(deps.LLM, deps.Log),
		pages:   pages,
	}, nil
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"markdown": render.HTML,
		"inc":      func(i int) int { return i + 1 },
	}
	pages := map[string]*template.Template{}
	for _, name := range []string{"rare_laws", "assist", "quiz"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// Routes mounts every page on a router carrying the shared middleware.
func (h *Handler) Routes() http.Handler {
	// two sequential model calls must fit in one request
	r := httputil.NewRouter(h.log, 2*h.deps.Config.LLMTimeout+30*time.Second)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/rare-laws", http.StatusFound)
	})
	r.Get("/healthz", httputil.HealthHandler(h.deps))

	r.Get("/rare-laws", h.rareLawsPage)
	r.Post("/rare-laws", h.findRareLaws)

	r.Get("/assist", h.assistPage)
	r.Post("/assist", h.assist)

	r.Route("/quiz", func(r chi.Router) {
		r.Get("/", h.quizPage)
		r.Post("/generate", h.generateQuiz)
		r.Post("/answer", h.answerQuiz)
	})
	return r
}

// render executes a page into a buffer first so template errors never leave
// a half-written response.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data page) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		httputil.Fail(h.log, w, "failed to render page", err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn("page write failed", "page", name, "err", err)
	}
}
