package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/auth"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/search"
	"github.com/sakif/prompt-library/internal/service"
	"github.com/sakif/prompt-library/internal/template"
)

// CatalogHandler serves prompts, categories and the model list.
type CatalogHandler struct {
	catalog  *service.CatalogService
	sessions *service.SessionService
	validate *Validator
	logger   *slog.Logger
}

func NewCatalogHandler(c *service.CatalogService, s *service.SessionService, v *Validator, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, sessions: s, validate: v, logger: logger}
}

// promptView is a prompt as the API shows it: the stored record plus the
// display name of its category and the caller's favorite flag.
type promptView struct {
	model.Prompt
	CategoryName string   `json:"categoryName"`
	IsFavorite   bool     `json:"isFavorite"`
	Placeholders []string `json:"placeholders,omitempty"`
}

type fillRequest struct {
	Values map[string]string `json:"values" validate:"max=100,dive,keys,varname,endkeys,max=20000"`
}

// HandleList searches the catalog.
//
// HTTP: GET /api/prompts?q=seo&category=marketing&aiModel=Claude&rating=4.5&tags=seo,blog&sortBy=rating
//
// sortBy defaults to "popular", the dashboard's default. An unknown sortBy
// keeps catalog order.
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query, filters, err := parseFilters(r)
	if err != nil {
		writeError(w, err)
		return
	}

	prompts, err := h.catalog.Search(query, filters)
	if err != nil {
		writeError(w, err)
		return
	}

	views, err := h.views(r, prompts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleFeatured returns the dashboard's top prompts.
//
// HTTP: GET /api/prompts/featured
func (h *CatalogHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	views, err := h.views(r, h.catalog.Featured())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleGet returns one prompt with its placeholder list.
//
// HTTP: GET /api/prompts/{id}
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	fav := false
	if sid, ok := auth.SessionIDFromContext(r.Context()); ok {
		if fav, err = h.sessions.IsFavorite(r.Context(), sid, p.ID); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, promptView{
		Prompt:       p,
		CategoryName: h.catalog.CategoryName(p.Category),
		IsFavorite:   fav,
		Placeholders: template.Placeholders(p.Content),
	})
}

// HandleFill substitutes values into a prompt.
//
// HTTP: POST /api/prompts/{id}/fill
// REQUEST BODY: {"values": {"topic": "bees", "duration": "10"}}
//
// An empty body previews the prompt with each variable's example value.
// Missing values are reported, not rejected: the response always carries the
// content as far as it could be filled.
func (h *CatalogHandler) HandleFill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req := fillRequest{}
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	var (
		res service.FillResult
		err error
	)
	if req.Values == nil {
		res, err = h.catalog.Preview(id)
	} else {
		res, err = h.catalog.Fill(id, req.Values)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleModels lists the distinct AI models in the catalog.
//
// HTTP: GET /api/models
func (h *CatalogHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Models())
}

// views decorates prompts with category names and the caller's favorites.
func (h *CatalogHandler) views(r *http.Request, prompts []model.Prompt) ([]promptView, error) {
	favs := map[string]bool{}
	if sid, ok := auth.SessionIDFromContext(r.Context()); ok {
		list, err := h.sessions.FavoritePrompts(r.Context(), sid)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			favs[p.ID] = true
		}
	}

	out := make([]promptView, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, promptView{
			Prompt:       p,
			CategoryName: h.catalog.CategoryName(p.Category),
			IsFavorite:   favs[p.ID],
		})
	}
	return out, nil
}

// parseFilters reads the search query string shared by the API and the
// library page.
func parseFilters(r *http.Request) (string, model.SearchFilters, error) {
	q := r.URL.Query()

	f := model.SearchFilters{
		Category: strings.TrimSpace(q.Get("category")),
		AIModel:  strings.TrimSpace(q.Get("aiModel")),
		SortBy:   model.SortPopular,
	}

	if v := strings.TrimSpace(q.Get("rating")); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", model.SearchFilters{}, apperror.ValidationFailed("rating", "rating must be a number")
		}
		f.Rating = rating
	}

	for _, raw := range q["tags"] {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}

	if q.Has("sortBy") {
		f.SortBy = search.ParseSortBy(q.Get("sortBy"))
	}

	return q.Get("q"), f, nil
}
