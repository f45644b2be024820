// Package catalog holds the immutable prompt catalog.
//
// The catalog is a fixture: a list of categories, a list of prompts and the
// single mock user. It is decoded once at startup from YAML (the embedded
// catalog.yaml unless a file path is given) and never mutated afterwards, so a
// *Catalog can be shared by every request without locking.
//
// Loading performs no schema validation beyond YAML decoding and prompt id
// uniqueness. A prompt whose content references a placeholder it does not
// declare loads fine; Lint reports such mismatches separately.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/template"
)

//go:embed catalog.yaml
var defaultFixture []byte

// fixture mirrors the top-level layout of catalog.yaml.
type fixture struct {
	User       model.User       `yaml:"user"`
	Categories []model.Category `yaml:"categories"`
	Prompts    []model.Prompt   `yaml:"prompts"`
}

// Catalog is the read-only prompt and category store.
type Catalog struct {
	prompts    []model.Prompt
	byID       map[string]int
	categories []model.Category
	user       model.User
}

// Default returns the catalog built from the embedded fixture.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultFixture))
}

// LoadFile reads a catalog fixture from path. An empty path means the
// embedded fixture.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening %s: %w", path, err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: loading %s: %w", path, err)
	}
	return c, nil
}

// Load decodes a YAML fixture. Duplicate prompt ids are rejected with an
// apperror.ErrConflict error.
func Load(r io.Reader) (*Catalog, error) {
	var fx fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return nil, fmt.Errorf("catalog: decoding fixture: %w", err)
	}

	c := &Catalog{
		prompts:    fx.Prompts,
		byID:       make(map[string]int, len(fx.Prompts)),
		categories: fx.Categories,
		user:       fx.User,
	}
	for i, p := range fx.Prompts {
		if _, dup := c.byID[p.ID]; dup {
			return nil, apperror.Conflict("prompt", p.ID)
		}
		c.byID[p.ID] = i
	}

	return c, nil
}

// Prompts returns every prompt in catalog order. The slice is a copy; the
// prompts inside share their tag/variable slices with the catalog and must be
// treated as read-only.
func (c *Catalog) Prompts() []model.Prompt {
	return slices.Clone(c.prompts)
}

// Prompt looks up a prompt by id.
func (c *Catalog) Prompt(id string) (model.Prompt, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Prompt{}, apperror.NotFound("prompt", id)
	}
	return c.prompts[i], nil
}

// Has reports whether id names a prompt in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Categories returns every category in fixture order.
func (c *Catalog) Categories() []model.Category {
	return slices.Clone(c.categories)
}

// Category looks up display metadata for a category id. Callers are expected
// to omit the display element when ok is false rather than fail.
func (c *Catalog) Category(id string) (model.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return model.Category{}, false
}

// LiveCount counts the prompts actually filed under categoryID. Unlike
// Category.PromptCount it always matches the catalog.
func (c *Catalog) LiveCount(categoryID string) int {
	n := 0
	for _, p := range c.prompts {
		if p.Category == categoryID {
			n++
		}
	}
	return n
}

// Models returns the distinct AI model names used by the catalog, in order of
// first appearance.
func (c *Catalog) Models() []string {
	var models []string
	seen := make(map[string]bool)
	for _, p := range c.prompts {
		for _, m := range p.AIModel {
			if !seen[m] {
				seen[m] = true
				models = append(models, m)
			}
		}
	}
	return models
}

// MockUser returns the fixture's built-in user with its favorites and
// collections.
func (c *Catalog) MockUser() model.User {
	u := c.user
	u.Favorites = slices.Clone(c.user.Favorites)
	u.Collections = slices.Clone(c.user.Collections)
	return u
}

// Issue is one fixture inconsistency found by Lint.
type Issue struct {
	PromptID string `json:"promptId"`
	Message  string `json:"message"`
}

// Lint reports placeholders without a declared variable, declared variables
// the content never uses, and prompts whose category has no display metadata.
// None of these stop the catalog from loading.
func (c *Catalog) Lint() []Issue {
	var issues []Issue
	for _, p := range c.prompts {
		used := template.Placeholders(p.Content)
		for _, name := range used {
			if _, ok := p.Variable(name); !ok {
				issues = append(issues, Issue{p.ID, fmt.Sprintf("placeholder {%s} has no declared variable", name)})
			}
		}
		for _, v := range p.Variables {
			if !slices.Contains(used, v.Name) {
				issues = append(issues, Issue{p.ID, fmt.Sprintf("variable %q is never used in content", v.Name)})
			}
		}
		if _, ok := c.Category(p.Category); !ok {
			issues = append(issues, Issue{p.ID, fmt.Sprintf("category %q is not defined", p.Category)})
		}
	}
	return issues
}
