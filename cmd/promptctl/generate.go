package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/prompt-library/internal/generator"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		req     generator.Request
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a prompt for a goal",
		Long: fmt.Sprintf(`Builds a ready-to-use prompt from a goal, optional context, a target
model and a tone.

Models: %s
Tones:  %s

Example:
  promptctl generate --goal "plan a product launch" --context "marketing lead" --tone persuasive`,
			strings.Join(generator.Models, ", "), strings.Join(generator.Tones, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.generator.Generate(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Prompt)
			a.copy(cmd, copyOut, res.Prompt)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Goal, "goal", "g", "", "What the prompt should accomplish (required)")
	f.StringVar(&req.Context, "context", "", "Background or the role to play")
	f.StringVarP(&req.Model, "model", "m", generator.DefaultModel, "Target AI model")
	f.StringVar(&req.Tone, "tone", generator.DefaultTone, "Tone of the response")
	f.BoolVar(&copyOut, "copy", false, "Copy the generated prompt to the clipboard")
	return cmd
}
