// Package model defines the data structures shared by the catalog, the
// search engine, sessions and the HTTP layer. Types here carry no behaviour
// beyond small lookups on their own fields.
package model

import (
	"strings"
	"time"
)

// Prompt is a reusable instruction template for a generative AI model.
//
// The `json:"..."` tags shape API responses; the `yaml:"..."` tags shape the
// catalog fixture file. Both use the same camelCase names so a prompt looks the
// same in the fixture and on the wire.
//
// Content may contain placeholders of the exact form {name}. Each name is
// expected (but not required) to appear in Variables.
type Prompt struct {
	ID          string     `json:"id"          yaml:"id"`
	Title       string     `json:"title"       yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Content     string     `json:"content"     yaml:"content"`
	Category    string     `json:"category"    yaml:"category"` // Category.ID, not enforced
	Tags        []string   `json:"tags"        yaml:"tags"`
	AIModel     []string   `json:"aiModel"     yaml:"aiModel"`
	Rating      float64    `json:"rating"      yaml:"rating"`
	Usage       int        `json:"usage"       yaml:"usage"`
	Author      string     `json:"author"      yaml:"author"`
	IsPublic    bool       `json:"isPublic"    yaml:"isPublic"`
	Variables   []Variable `json:"variables"   yaml:"variables"`
	CreatedAt   time.Time  `json:"createdAt"   yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"   yaml:"updatedAt"`
}

// Variable is a named placeholder declared by a Prompt.
type Variable struct {
	Name        string `json:"name"        yaml:"name"`
	Placeholder string `json:"placeholder" yaml:"placeholder"` // example text shown to the user
	Required    bool   `json:"required"    yaml:"required"`
}

// HasTag reports whether the prompt carries tag, ignoring case.
func (p Prompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SupportsModel reports whether model is listed in AIModel.
func (p Prompt) SupportsModel(model string) bool {
	for _, m := range p.AIModel {
		if m == model {
			return true
		}
	}
	return false
}

// Variable returns the declared variable with the given name.
func (p Prompt) Variable(name string) (Variable, bool) {
	for _, v := range p.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}
