package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/prompt-library/internal/generator"
	"github.com/sakif/prompt-library/internal/service"
)

// GeneratorHandler serves the prompt generator.
type GeneratorHandler struct {
	generator *service.GeneratorService
	validate  *Validator
	logger    *slog.Logger
}

func NewGeneratorHandler(g *service.GeneratorService, v *Validator, logger *slog.Logger) *GeneratorHandler {
	return &GeneratorHandler{generator: g, validate: v, logger: logger}
}

// HandleGenerate builds a prompt from a goal.
//
// HTTP: POST /api/generate
// REQUEST BODY: {"goal": "...", "context": "...", "aiModel": "Midjourney", "tone": "creative"}
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generator.Request
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.generator.Generate(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleOptions lists the models and tones the generator accepts.
//
// HTTP: GET /api/generate/options
func (h *GeneratorHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	models, tones := h.generator.Options()
	writeJSON(w, http.StatusOK, map[string][]string{
		"aiModels": models,
		"tones":    tones,
	})
}
