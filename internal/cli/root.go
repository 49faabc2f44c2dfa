package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidedeck/pkg/buildinfo"
	"github.com/matzehuels/slidedeck/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command itself compiles a deck:
//
//	slidedeck deck.yaml            # compile once into ./slides
//	slidedeck -w deck.yaml         # compile, then recompile on every save
//	slidedeck -o public deck.yaml  # choose the output directory
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [flags] <deck.yaml>",
		Short: "Slidedeck compiles YAML slide decks into HTML presentations",
		Long: `Slidedeck compiles a YAML slide deck into a single self-contained index.html
plus an assets/ directory holding the slides' media. With --watch it keeps
running and recompiles whenever the deck changes.

The output directory is deleted and recreated on every compile.`,
		Version:       buildinfo.Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetWatchHooks(hooks)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd, args[0])
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVarP(&c.flags.config, "config", "c", "", "config file (default: slidedeck.toml next to the deck)")
	pf.StringVarP(&c.flags.output, "output", "o", "", "output directory (default \"slides\")")
	pf.StringVar(&c.flags.title, "title", "", "document title (default \"Slides\")")
	pf.DurationVar(&c.flags.debounce, "debounce", 0, "quiet window before a watched change recompiles (default 500ms)")
	pf.BoolVar(&c.flags.unsafeHTML, "unsafe-html", false, "pass raw HTML in markdown through to the page")
	pf.BoolVarP(&c.flags.watch, "watch", "w", false, "recompile whenever the deck changes")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
