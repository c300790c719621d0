package cli

import (
	"log"

	"github.com/spf13/cobra"

	"survey-bot/internal/catalog"
	"survey-bot/internal/config"
)

// NewSetupSheetCmd builds the maintenance subcommand that prepares the
// response store header. With --force it clears collected rows first.
func NewSetupSheetCmd(configPath *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "setup-sheet",
		Short: "Create or repair the response store header",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.Catalog.Path)
			if err != nil {
				return err
			}
			sink, err := newRowSink(cfg)
			if err != nil {
				return err
			}
			titles := cat.Header()
			if err := sink.EnsureHeader(cmd.Context(), titles, force); err != nil {
				return err
			}
			log.Printf("header ready with %d columns", len(titles))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "clear existing rows and rewrite the header")
	return cmd
}
