package cmd

import (
	"github.com/naka-gawa/readme-stats/internal/render"
	"github.com/naka-gawa/readme-stats/internal/usecase"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrites the stats section of the profile README",
	Long: `Fetches the account profile and lifetime contributions, renders the stats
block with language badges and replaces the content between the start and end
markers of the document. The document is left untouched on any failure.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, aggregator, err := newAggregator()
	if err != nil {
		return err
	}
	updater := usecase.NewUpdater(aggregator, render.NewRenderer(cfg.FallbackColor), logger)
	return updater.Run(cmd.Context(), usecase.UpdateOptions{
		Login:       cfg.Login,
		Document:    cfg.Document,
		StartMarker: cfg.StartMarker,
		EndMarker:   cfg.EndMarker,
		DryRun:      dryRun,
		Out:         cmd.OutOrStdout(),
	})
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
