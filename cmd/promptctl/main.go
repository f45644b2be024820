// Command promptctl browses the prompt catalog from a terminal.
//
// It reads the same catalog the server serves (the embedded one, or a YAML
// file given with --catalog) and offers the read-only half of the library:
// search, inspect, fill, and the prompt generator. There are no sessions, so
// favorites and dark mode only exist in the web UI.
//
// Examples:
//
//	promptctl list --query seo --sort rating
//	promptctl show 1
//	promptctl fill 1 --set topic="home coffee" --set duration=8 --copy
//	promptctl generate --goal "a logo for a bakery" --model Midjourney
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/prompt-library/internal/catalog"
	"github.com/sakif/prompt-library/internal/clipboard"
	"github.com/sakif/prompt-library/internal/service"
)

// app carries the global flags and the services every subcommand uses.
// The services are built in PersistentPreRunE once flags are parsed.
type app struct {
	catalogPath string
	verbose     bool

	clip      clipboard.Writer
	logger    *slog.Logger
	catalog   *service.CatalogService
	generator *service.GeneratorService
}

func main() {
	if err := newRootCmd(clipboard.System{}).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. clip receives --copy output.
func newRootCmd(clip clipboard.Writer) *cobra.Command {
	a := &app{clip: clip}

	root := &cobra.Command{
		Use:   "promptctl",
		Short: "Browse, fill and generate AI prompts",
		Long: `promptctl is the command-line side of the prompt library.

It searches the prompt catalog, shows a prompt with its variables, fills
{placeholders} with your values and generates new prompts for a goal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", os.Getenv("CATALOG_PATH"), "Path to a YAML catalog (default: embedded catalog)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.listCmd(),
		a.showCmd(),
		a.fillCmd(),
		a.categoriesCmd(),
		a.generateCmd(),
	)
	return root
}

// init creates the logger and loads the catalog. Logs go to stderr so that
// command output can be piped.
func (a *app) init(logOut io.Writer) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	cat, err := catalog.LoadFile(a.catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	for _, issue := range cat.Lint() {
		a.logger.Debug("catalog issue",
			slog.String("promptID", issue.PromptID),
			slog.String("issue", issue.Message),
		)
	}

	a.catalog = service.NewCatalogService(cat, nil, a.logger)
	a.generator = service.NewGeneratorService(nil, a.logger)
	return nil
}

// copy puts text on the clipboard when asked to. A failed copy is reported
// on stderr and never fails the command.
func (a *app) copy(cmd *cobra.Command, enabled bool, text string) {
	if !enabled {
		return
	}
	if clipboard.Copy(a.clip, text, a.logger) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
	}
}
