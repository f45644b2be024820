package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/prompt-library/internal/service"
)

type categoryView struct {
	service.CategorySummary
	Prompts []promptView `json:"prompts"`
}

// HandleCategories lists every category with its stored promptCount and the
// live count of prompts the catalog really holds.
//
// HTTP: GET /api/categories
func (h *CatalogHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

// HandleCategory returns one category and its prompts.
//
// HTTP: GET /api/categories/{id}
func (h *CatalogHandler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.Category(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	views, err := h.views(r, detail.Prompts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryView{CategorySummary: detail.CategorySummary, Prompts: views})
}
