package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/prompt-library/internal/template"
)

func (a *app) fillCmd() *cobra.Command {
	var (
		set      []string
		examples bool
		copyOut  bool
	)

	cmd := &cobra.Command{
		Use:   "fill <id>",
		Short: "Fill a prompt's placeholders and print the result",
		Long: `Substitutes --set name=value pairs into the prompt's {placeholders}.

Placeholders without a value stay in the output as written. Missing
required variables are listed on stderr; the prompt is printed either way.

Examples:
  promptctl fill 1 --set duration=8 --set topic="home coffee" --set audience=students
  promptctl fill 4 --examples --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(set)
			if err != nil {
				return err
			}
			if examples {
				p, err := a.catalog.Get(args[0])
				if err != nil {
					return err
				}
				defaults := template.Defaults(p)
				for k, v := range values {
					defaults[k] = v
				}
				values = defaults
			}

			res, err := a.catalog.Fill(args[0], values)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Content)

			stderr := cmd.ErrOrStderr()
			if len(res.Missing) > 0 {
				fmt.Fprintf(stderr, "Missing required: %s\n", strings.Join(res.Missing, ", "))
			}
			if len(res.Unfilled) > 0 {
				fmt.Fprintf(stderr, "Unfilled: %s\n", strings.Join(res.Unfilled, ", "))
			}

			a.copy(cmd, copyOut, res.Content)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&set, "set", nil, "Variable value as name=value (repeatable)")
	f.BoolVar(&examples, "examples", false, "Use each variable's example text for values not given with --set")
	f.BoolVar(&copyOut, "copy", false, "Copy the filled prompt to the clipboard")
	return cmd
}

// parseAssignments turns ["a=1", "b=x=y"] into {"a": "1", "b": "x=y"}.
// Later assignments to the same name win.
func parseAssignments(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}
