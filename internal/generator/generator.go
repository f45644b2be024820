// Package generator turns a goal and a little context into a ready-to-use
// prompt for a chosen AI model.
//
// Image models get a prompt that asks for visual detail; every other model
// gets a role-play prompt in the requested tone. Generation is a pure string
// build with no model call behind it.
package generator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sakif/prompt-library/internal/apperror"
)

// Models lists the target models in display order.
var Models = []string{"ChatGPT", "Claude", "DALL-E", "Midjourney", "Stable Diffusion"}

// Tones lists the response tones in display order.
var Tones = []string{"professional", "casual", "creative", "technical", "persuasive", "educational"}

var imageModels = []string{"DALL-E", "Midjourney", "Stable Diffusion"}

const (
	DefaultModel = "ChatGPT"
	DefaultTone  = "professional"
)

// Request describes what the user wants a prompt for. Model and Tone fall
// back to DefaultModel and DefaultTone when empty.
type Request struct {
	Goal    string `json:"goal"    validate:"required,max=2000"`
	Context string `json:"context" validate:"max=2000"`
	Model   string `json:"aiModel" validate:"omitempty,oneof=ChatGPT Claude DALL-E Midjourney 'Stable Diffusion'"`
	Tone    string `json:"tone"    validate:"omitempty,oneof=professional casual creative technical persuasive educational"`
}

// Result is a generated prompt together with the settings that produced it.
type Result struct {
	Prompt string `json:"prompt"`
	Model  string `json:"aiModel"`
	Tone   string `json:"tone"`
	Image  bool   `json:"image"`
}

// IsImageModel reports whether model produces images rather than text.
func IsImageModel(model string) bool {
	return slices.Contains(imageModels, model)
}

// Generate builds a prompt for req. A blank goal or an unknown model or tone
// is an apperror.ErrValidation error.
func Generate(req Request) (Result, error) {
	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		return Result{}, apperror.ValidationFailed("goal", "goal is required")
	}

	model := req.Model
	if model == "" {
		model = DefaultModel
	}
	if !slices.Contains(Models, model) {
		return Result{}, apperror.ValidationFailed("aiModel",
			fmt.Sprintf("aiModel must be one of: %s", strings.Join(Models, ", ")))
	}

	tone := req.Tone
	if tone == "" {
		tone = DefaultTone
	}
	if !slices.Contains(Tones, tone) {
		return Result{}, apperror.ValidationFailed("tone",
			fmt.Sprintf("tone must be one of: %s", strings.Join(Tones, ", ")))
	}

	context := strings.TrimSpace(req.Context)

	res := Result{Model: model, Tone: tone, Image: IsImageModel(model)}
	if res.Image {
		res.Prompt = imagePrompt(goal, context, model)
	} else {
		res.Prompt = textPrompt(goal, context, tone)
	}
	return res, nil
}

func imagePrompt(goal, context, model string) string {
	if context == "" {
		context = "General purpose image generation"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed %s prompt for: %s\n\n", strings.ToLower(model), goal)
	b.WriteString("Include specific details about:\n")
	b.WriteString("- Visual style and composition\n")
	b.WriteString("- Color palette and lighting\n")
	b.WriteString("- Camera angle and perspective\n")
	b.WriteString("- Artistic technique or medium\n")
	b.WriteString("- Mood and atmosphere\n\n")
	fmt.Fprintf(&b, "Context: %s\n\n", context)
	fmt.Fprintf(&b, "Example format: \"%s, [artistic style], [color description], [lighting], [composition], high quality, detailed, professional photography\"", goal)
	return b.String()
}

func textPrompt(goal, context, tone string) string {
	if context == "" {
		context = "assistant"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as an expert %s and help me with: %s\n\n", context, goal)
	fmt.Fprintf(&b, "Please provide a %s response that:\n", tone)
	b.WriteString("- Addresses the specific goal clearly\n")
	b.WriteString("- Includes actionable steps or recommendations\n")
	b.WriteString("- Uses appropriate examples when helpful\n")
	fmt.Fprintf(&b, "- Maintains a %s tone throughout\n\n", tone)
	b.WriteString("Format your response in a structured way with clear sections and bullet points where appropriate.")
	return b.String()
}
