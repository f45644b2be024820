package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/prompt-library/internal/apperror"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

// =========================================================================
// LOAD TESTS
// =========================================================================

func TestDefault_LoadsFixture(t *testing.T) {
	c := newTestCatalog(t)

	assert.Len(t, c.Prompts(), 6)
	assert.Len(t, c.Categories(), 8)

	p, err := c.Prompt("3")
	require.NoError(t, err)
	assert.Equal(t, "Instagram Caption Generator", p.Title)
	assert.Equal(t, 2156, p.Usage)
	assert.InDelta(t, 4.7, p.Rating, 0.0001)
	assert.Equal(t, []string{"ChatGPT", "Claude"}, p.AIModel)
	assert.Equal(t, 2024, p.CreatedAt.Year())
	assert.Len(t, p.Variables, 3)
	assert.True(t, strings.HasPrefix(p.Content, "Create an engaging Instagram caption for a post about {topic}.\n"))
}

func TestLoad_RejectsDuplicatePromptIDs(t *testing.T) {
	fixture := `
prompts:
  - id: "1"
    title: first
  - id: "1"
    title: second
`
	_, err := Load(strings.NewReader(fixture))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestLoad_EmptyFixture(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Prompts())
	assert.Empty(t, c.Categories())
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("prompts:\n  - id: \"1\"\n    titel: typo\n"))
	assert.Error(t, err)
}

func TestLoad_UndeclaredPlaceholderStillLoads(t *testing.T) {
	fixture := `
prompts:
  - id: "x"
    title: broken
    category: nowhere
    content: "Hello {name}"
`
	c, err := Load(strings.NewReader(fixture))
	require.NoError(t, err)

	p, err := c.Prompt("x")
	require.NoError(t, err)
	assert.Equal(t, "Hello {name}", p.Content)

	issues := c.Lint()
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, "{name}")
	assert.Contains(t, issues[1].Message, `"nowhere"`)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompts:\n  - id: \"a\"\n    title: A\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, c.Has("a"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := LoadFile("")
	require.NoError(t, err)
	assert.Len(t, def.Prompts(), 6)
}

// =========================================================================
// LOOKUP TESTS
// =========================================================================

func TestPrompt_NotFound(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Prompt("999")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestCategory_UnknownDegradesGracefully(t *testing.T) {
	c := newTestCatalog(t)

	cat, ok := c.Category("writing")
	assert.True(t, ok)
	assert.Equal(t, "PenTool", cat.Icon)

	_, ok = c.Category("astrology")
	assert.False(t, ok)
}

func TestPrompts_ReturnsCopy(t *testing.T) {
	c := newTestCatalog(t)

	prompts := c.Prompts()
	prompts[0], prompts[1] = prompts[1], prompts[0]

	again := c.Prompts()
	assert.Equal(t, "1", again[0].ID)
}

// promptCount is an editorial value carried by the fixture. It must come back
// exactly as stored, even though it disagrees with the real population.
func TestPromptCount_IsStoredNotDerived(t *testing.T) {
	c := newTestCatalog(t)

	cat, ok := c.Category("writing")
	require.True(t, ok)
	assert.Equal(t, 45, cat.PromptCount)
	assert.Equal(t, 1, c.LiveCount("writing"))

	assert.Equal(t, 0, c.LiveCount("research"))
}

func TestModels(t *testing.T) {
	c := newTestCatalog(t)

	assert.Equal(t,
		[]string{"ChatGPT", "Claude", "Copilot", "DALL-E", "Midjourney", "Stable Diffusion"},
		c.Models(),
	)
}

func TestMockUser(t *testing.T) {
	c := newTestCatalog(t)

	u := c.MockUser()
	assert.Equal(t, "Alex Thompson", u.Name)
	assert.Equal(t, []string{"1", "3", "5"}, u.Favorites)
	require.Len(t, u.Collections, 1)
	assert.Equal(t, []string{"1", "2"}, u.Collections[0].Prompts)

	// Mutating the returned user must not leak into the catalog.
	u.Favorites[0] = "changed"
	assert.Equal(t, "1", c.MockUser().Favorites[0])
}

func TestLint_DefaultFixtureIsClean(t *testing.T) {
	c := newTestCatalog(t)
	assert.Empty(t, c.Lint())
}
