// Package handler contains the HTTP handlers of the prompt library: the JSON
// API under /api and the server-rendered library page at /.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (query params, body, path params)
// 2. Call the service layer
// 3. Write the HTTP response (status code, headers, body)
//
// Handlers hold no business rules. They are the glue between HTTP and the
// services.
package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/auth"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/service"
	"github.com/sakif/prompt-library/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// LibraryHandler renders the browse page.
// Templates are parsed once at startup and reused for every request.
type LibraryHandler struct {
	templates *template.Template
	catalog   *service.CatalogService
	sessions  *service.SessionService
	logger    *slog.Logger
}

// NewLibraryHandler parses the embedded templates.
//
// base.html defines the page shell with a {{template "content" .}} slot;
// library.html fills it with {{define "content"}}.
func NewLibraryHandler(c *service.CatalogService, s *service.SessionService, logger *slog.Logger) (*LibraryHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/library.html")
	if err != nil {
		return nil, err
	}

	return &LibraryHandler{
		templates: tmpl,
		catalog:   c,
		sessions:  s,
		logger:    logger,
	}, nil
}

// libraryPage is everything library.html needs.
type libraryPage struct {
	Title      string
	Session    session.Snapshot
	Query      string
	Filters    model.SearchFilters
	Prompts    []promptView
	Featured   []promptView
	Categories []service.CategorySummary
	Models     []string
	SortOrders []model.SortBy
	Error      string
	ErrorField string // filter input to highlight
}

// HandleLibrary serves the library page. It accepts the same query
// parameters as GET /api/prompts. A bad filter is shown on the page instead
// of failing the request.
//
// HTTP: GET /
func (h *LibraryHandler) HandleLibrary(w http.ResponseWriter, r *http.Request) {
	page := libraryPage{
		Title:      "Prompt Library",
		Categories: h.catalog.Categories(),
		Models:     h.catalog.Models(),
		SortOrders: []model.SortBy{model.SortPopular, model.SortNewest, model.SortRating, model.SortUsage},
	}

	favs := map[string]bool{}
	if sid, ok := auth.SessionIDFromContext(r.Context()); ok {
		snap, err := h.sessions.Snapshot(r.Context(), sid)
		if err != nil {
			h.logger.Error("loading session for page",
				slog.String("sessionID", sid),
				slog.String("error", err.Error()),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		page.Session = snap
		for _, id := range snap.Favorites {
			favs[id] = true
		}
	}

	query, filters, err := parseFilters(r)
	if err == nil {
		var prompts []model.Prompt
		prompts, err = h.catalog.Search(query, filters)
		page.Prompts = h.decorate(prompts, favs)
	}
	if err != nil {
		page.Error = err.Error()
		page.ErrorField = apperror.FieldOf(err)
	}
	page.Query = query
	page.Filters = filters
	page.Featured = h.decorate(h.catalog.Featured(), favs)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", page); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *LibraryHandler) decorate(prompts []model.Prompt, favs map[string]bool) []promptView {
	out := make([]promptView, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, promptView{
			Prompt:       p,
			CategoryName: h.catalog.CategoryName(p.Category),
			IsFavorite:   favs[p.ID],
		})
	}
	return out
}
