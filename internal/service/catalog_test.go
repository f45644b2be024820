package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/metrics"
	"github.com/sakif/prompt-library/internal/model"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return NewCatalogService(testCatalog(t), metrics.New(), testLogger())
}

func ids(prompts []model.Prompt) []string {
	out := make([]string, len(prompts))
	for i, p := range prompts {
		out[i] = p.ID
	}
	return out
}

// =========================================================================
// SEARCH TESTS
// =========================================================================

func TestSearch_DefaultsToCatalogOrder(t *testing.T) {
	s := newTestCatalogService(t)

	got, err := s.Search("", model.SearchFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(got))
}

func TestSearch_PopularDashboardOrder(t *testing.T) {
	s := newTestCatalogService(t)

	got, err := s.Search("", model.SearchFilters{SortBy: model.SortPopular})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2", "4", "5", "6"}, ids(got))
}

func TestSearch_RatingOutOfRange(t *testing.T) {
	s := newTestCatalogService(t)

	for _, r := range []float64{-1, 5.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := s.Search("", model.SearchFilters{Rating: r})
		assert.True(t, errors.Is(err, apperror.ErrValidation), "rating %v", r)
		assert.Equal(t, "rating", apperror.FieldOf(err))
	}
}

func TestSearch_NoMatchIsEmptyNotError(t *testing.T) {
	s := newTestCatalogService(t)

	got, err := s.Search("quantum knitting", model.SearchFilters{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// =========================================================================
// LOOKUP TESTS
// =========================================================================

func TestGet(t *testing.T) {
	s := newTestCatalogService(t)

	p, err := s.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "Code Review Assistant", p.Title)

	_, err = s.Get("999")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = s.Get("  ")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestFeatured(t *testing.T) {
	s := newTestCatalogService(t)
	assert.Equal(t, []string{"1", "2", "3"}, ids(s.Featured()))
}

func TestCategories_CarryStoredAndLiveCounts(t *testing.T) {
	s := newTestCatalogService(t)

	cats := s.Categories()
	require.Len(t, cats, 8)
	assert.Equal(t, "writing", cats[0].ID)
	assert.Equal(t, 45, cats[0].PromptCount)
	assert.Equal(t, 1, cats[0].LiveCount)
}

func TestCategory(t *testing.T) {
	s := newTestCatalogService(t)

	d, err := s.Category("coding")
	require.NoError(t, err)
	assert.Equal(t, "Coding", d.Name)
	assert.Equal(t, []string{"2"}, ids(d.Prompts))

	empty, err := s.Category("research")
	require.NoError(t, err)
	assert.Empty(t, empty.Prompts)

	_, err = s.Category("astrology")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestCategoryName_FallsBackToID(t *testing.T) {
	s := newTestCatalogService(t)

	assert.Equal(t, "Marketing", s.CategoryName("marketing"))
	assert.Equal(t, "astrology", s.CategoryName("astrology"))
}

// =========================================================================
// FILL TESTS
// =========================================================================

func TestFill_Complete(t *testing.T) {
	s := newTestCatalogService(t)

	res, err := s.Fill("1", map[string]string{
		"duration": "10",
		"topic":    "sustainable living",
		"audience": "students",
		"tone":     "upbeat",
	})
	require.NoError(t, err)

	assert.Contains(t, res.Content, "10-minute video about sustainable living")
	assert.NotContains(t, res.Content, "{")
	assert.True(t, res.Complete())
	assert.Empty(t, res.Missing)
}

func TestFill_PartialReportsMissing(t *testing.T) {
	s := newTestCatalogService(t)

	res, err := s.Fill("1", map[string]string{"topic": "bees"})
	require.NoError(t, err)

	assert.Contains(t, res.Content, "{duration}-minute video about bees")
	assert.Equal(t, []string{"duration", "audience"}, res.Missing)
	assert.Equal(t, []string{"duration", "audience", "tone"}, res.Unfilled)
	assert.False(t, res.Complete())
}

func TestFill_UnknownPrompt(t *testing.T) {
	s := newTestCatalogService(t)

	_, err := s.Fill("999", nil)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestPreview_UsesExampleValues(t *testing.T) {
	s := newTestCatalogService(t)

	res, err := s.Preview("1")
	require.NoError(t, err)
	assert.True(t, res.Complete())
}

func TestModels(t *testing.T) {
	s := newTestCatalogService(t)
	assert.Contains(t, s.Models(), "Stable Diffusion")
}
