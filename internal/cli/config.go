package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand prints the effective configuration for a deck.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config [deck.yaml]",
		Short: "Print the effective configuration",
		Long: `Print the configuration a compile of the given deck would use, after
applying slidedeck.toml, .env, SLIDEDECK_* variables and flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source string
			if len(args) == 1 {
				source = args[0]
			}
			cfg, err := c.loadConfig(cmd, source)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				printKeyValue("file", cfg.File)
				printNewline()
			}
			fmt.Print(cfg.String())
			return nil
		},
	}
}
