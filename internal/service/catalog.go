package service

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/catalog"
	"github.com/sakif/prompt-library/internal/metrics"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/search"
	"github.com/sakif/prompt-library/internal/template"
)

const (
	// FeaturedCount is how many prompts the dashboard shows as "top prompts".
	FeaturedCount = 3
	// MaxRating is the upper end of the rating scale.
	MaxRating = 5.0
)

// CategorySummary is a category with both its editorial prompt count and
// the number of prompts the catalog actually holds for it.
type CategorySummary struct {
	model.Category
	LiveCount int `json:"liveCount"`
}

// CategoryDetail is a category together with its prompts.
type CategoryDetail struct {
	CategorySummary
	Prompts []model.Prompt `json:"prompts"`
}

// FillResult is the outcome of substituting values into a prompt.
type FillResult struct {
	PromptID string `json:"promptId"`
	Content  string `json:"content"`
	template.Report
}

// Complete reports whether no placeholder is left in the content.
func (r FillResult) Complete() bool { return len(r.Unfilled) == 0 }

// CatalogService answers read-only questions about the prompt catalog.
type CatalogService struct {
	catalog *catalog.Catalog
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCatalogService creates a CatalogService. m may be nil.
func NewCatalogService(c *catalog.Catalog, m *metrics.Metrics, logger *slog.Logger) *CatalogService {
	return &CatalogService{catalog: c, metrics: m, logger: logger}
}

// Search filters and sorts the catalog. A rating outside 0..5, or NaN, is a
// validation error; everything else is accepted as-is.
func (s *CatalogService) Search(query string, f model.SearchFilters) ([]model.Prompt, error) {
	if math.IsNaN(f.Rating) || f.Rating < 0 || f.Rating > MaxRating {
		return nil, apperror.ValidationFailed("rating",
			fmt.Sprintf("rating must be between 0 and %.0f", MaxRating))
	}

	results := search.Apply(s.catalog.Prompts(), query, f)
	s.metrics.Search(string(f.SortBy), len(results))
	s.logger.Debug("search",
		slog.String("query", query),
		slog.String("category", f.Category),
		slog.String("aiModel", f.AIModel),
		slog.String("sortBy", string(f.SortBy)),
		slog.Int("results", len(results)),
	)
	return results, nil
}

// Get returns one prompt. Unknown ids are apperror.ErrNotFound.
func (s *CatalogService) Get(id string) (model.Prompt, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Prompt{}, apperror.ValidationFailed("id", "prompt ID is required")
	}
	return s.catalog.Prompt(id)
}

// Featured returns the first FeaturedCount prompts in catalog order.
func (s *CatalogService) Featured() []model.Prompt {
	prompts := s.catalog.Prompts()
	if len(prompts) > FeaturedCount {
		prompts = prompts[:FeaturedCount]
	}
	return prompts
}

// Categories lists every category in catalog order.
func (s *CatalogService) Categories() []CategorySummary {
	cats := s.catalog.Categories()
	out := make([]CategorySummary, 0, len(cats))
	for _, c := range cats {
		out = append(out, s.summary(c))
	}
	return out
}

// Category returns one category with its prompts in catalog order.
func (s *CatalogService) Category(id string) (CategoryDetail, error) {
	c, ok := s.catalog.Category(id)
	if !ok {
		return CategoryDetail{}, apperror.NotFound("category", id)
	}
	return CategoryDetail{
		CategorySummary: s.summary(c),
		Prompts:         search.Apply(s.catalog.Prompts(), "", model.SearchFilters{Category: id}),
	}, nil
}

// CategoryName returns the display name for id, or id itself when the
// category is not in the catalog.
func (s *CatalogService) CategoryName(id string) string {
	if c, ok := s.catalog.Category(id); ok {
		return c.Name
	}
	return id
}

// Models lists the distinct AI model names used by the catalog.
func (s *CatalogService) Models() []string {
	return s.catalog.Models()
}

// Fill substitutes values into prompt id. Missing or unknown variables are
// reported in the result, never as errors.
func (s *CatalogService) Fill(id string, values map[string]string) (FillResult, error) {
	p, err := s.Get(id)
	if err != nil {
		return FillResult{}, err
	}

	content, report := template.Fill(p, values)
	res := FillResult{PromptID: p.ID, Content: content, Report: report}
	s.metrics.Fill(res.Complete())
	s.logger.Debug("prompt filled",
		slog.String("id", p.ID),
		slog.Int("values", len(values)),
		slog.Int("unfilled", len(report.Unfilled)),
	)
	return res, nil
}

// Preview fills prompt id with each variable's example value.
func (s *CatalogService) Preview(id string) (FillResult, error) {
	p, err := s.Get(id)
	if err != nil {
		return FillResult{}, err
	}
	content, report := template.Fill(p, template.Defaults(p))
	return FillResult{PromptID: p.ID, Content: content, Report: report}, nil
}

func (s *CatalogService) summary(c model.Category) CategorySummary {
	return CategorySummary{Category: c, LiveCount: s.catalog.LiveCount(c.ID)}
}
