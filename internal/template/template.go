// Package template fills {name} placeholders in prompt content.
//
// There is no escaping: any "{name}" in the content whose name has a non-empty
// value is replaced, wherever it came from. Placeholders without a value stay
// in the output as literal text so a half-filled prompt still reads well in a
// live preview.
package template

import (
	"regexp"
	"strings"

	"github.com/sakif/prompt-library/internal/model"
)

var (
	// anyBraces matches every {...} run that contains no nested brace. It is
	// what Substitute scans for, so any supplied name can be replaced.
	anyBraces = regexp.MustCompile(`\{([^{}]*)\}`)

	// identifier matches placeholders that look like variable names. Used for
	// inspection only, so prose such as {"a": 1} is not reported.
	identifier = regexp.MustCompile(`\{([A-Za-z0-9_][A-Za-z0-9_\-]*)\}`)
)

// Substitute replaces every {name} in content with values[name] when that value
// is non-empty after trimming whitespace. The value itself is inserted
// untrimmed.
//
// The content is scanned once, left to right, so text introduced by a value is
// never scanned again. The result therefore does not depend on map order.
func Substitute(content string, values map[string]string) string {
	if len(values) == 0 {
		return content
	}
	return anyBraces.ReplaceAllStringFunc(content, func(match string) string {
		name := match[1 : len(match)-1]
		v, ok := values[name]
		if !ok || strings.TrimSpace(v) == "" {
			return match
		}
		return v
	})
}

// Placeholders returns the distinct placeholder names in content in order of
// first appearance.
func Placeholders(content string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range identifier.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Report describes how a set of values fits a prompt. It is advisory: filling
// a prompt never fails.
type Report struct {
	// Missing lists required variables with no usable value.
	Missing []string `json:"missing"`
	// Undeclared lists placeholders in the content that the prompt does not
	// declare as variables.
	Undeclared []string `json:"undeclared"`
	// Unfilled lists placeholders still present after substitution.
	Unfilled []string `json:"unfilled"`
}

// Fill substitutes values into the prompt content and reports what is left.
func Fill(p model.Prompt, values map[string]string) (string, Report) {
	out := Substitute(p.Content, values)

	r := Report{
		Missing:    []string{},
		Undeclared: []string{},
		Unfilled:   Placeholders(out),
	}
	if r.Unfilled == nil {
		r.Unfilled = []string{}
	}
	for _, v := range p.Variables {
		if v.Required && strings.TrimSpace(values[v.Name]) == "" {
			r.Missing = append(r.Missing, v.Name)
		}
	}
	for _, name := range Placeholders(p.Content) {
		if _, ok := p.Variable(name); !ok {
			r.Undeclared = append(r.Undeclared, name)
		}
	}
	return out, r
}

// Defaults returns a value map populated with each variable's example text.
// Useful for previews and for `promptctl fill --examples`.
func Defaults(p model.Prompt) map[string]string {
	values := make(map[string]string, len(p.Variables))
	for _, v := range p.Variables {
		values[v.Name] = v.Placeholder
	}
	return values
}
