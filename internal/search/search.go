// Package search filters and orders prompts for the library view.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/sakif/prompt-library/internal/model"
)

// Apply returns the prompts that satisfy every active predicate, ordered by
// f.SortBy. All predicates are ANDed:
//
//   - query (trimmed, case-insensitive) is a substring of the title, the
//     description, any tag or the category id
//   - Category equals the prompt category exactly
//   - Rating, when > 0, is at most the prompt rating
//   - AIModel is one of the prompt's models, exactly
//   - every entry of Tags is one of the prompt's tags, case-insensitively
//
// Sorting is stable, so ties keep catalog order, and an unset or unknown
// SortBy keeps catalog order. The input slice is not modified.
func Apply(prompts []model.Prompt, query string, f model.SearchFilters) []model.Prompt {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Rating > 0 && p.Rating < f.Rating {
			continue
		}
		if f.AIModel != "" && !p.SupportsModel(f.AIModel) {
			continue
		}
		if len(f.Tags) > 0 && !hasAllTags(p, f.Tags) {
			continue
		}
		out = append(out, p)
	}

	Sort(out, f.SortBy)
	return out
}

// Sort orders prompts in place by the given key, descending, keeping ties in
// their current order.
func Sort(prompts []model.Prompt, by model.SortBy) {
	switch by {
	case model.SortPopular, model.SortUsage:
		slices.SortStableFunc(prompts, func(a, b model.Prompt) int {
			return cmp.Compare(b.Usage, a.Usage)
		})
	case model.SortNewest:
		slices.SortStableFunc(prompts, func(a, b model.Prompt) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case model.SortRating:
		slices.SortStableFunc(prompts, func(a, b model.Prompt) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	}
}

// ParseSortBy maps a request value onto a SortBy. Unknown values map to
// SortNone, which keeps catalog order.
func ParseSortBy(s string) model.SortBy {
	switch by := model.SortBy(strings.ToLower(strings.TrimSpace(s))); by {
	case model.SortPopular, model.SortNewest, model.SortRating, model.SortUsage:
		return by
	default:
		return model.SortNone
	}
}

func matchesQuery(p model.Prompt, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func hasAllTags(p model.Prompt, tags []string) bool {
	for _, want := range tags {
		if !p.HasTag(want) {
			return false
		}
	}
	return true
}
