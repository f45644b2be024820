package model

// Category is a labelled grouping of prompts for browsing.
//
// PromptCount is an editorial display value carried by the fixture. It is NOT
// recomputed from the prompt list and is allowed to drift from the real number
// of prompts in the category; catalog.LiveCount gives the real number.
type Category struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon"        yaml:"icon"`  // symbolic glyph name, e.g. "PenTool"
	PromptCount int    `json:"promptCount" yaml:"promptCount"`
	Color       string `json:"color"       yaml:"color"` // display token
}
