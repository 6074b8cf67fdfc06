package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// statsOutput is what the stats command prints.
type statsOutput struct {
	domain.Report `yaml:",inline"`
	Summary       usecase.YearlySummary `json:"summary" yaml:"summary"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregates GitHub profile stats and outputs them as JSON or YAML",
	Long: `Fetches the same data as update (join date, languages, stars and lifetime
contributions with a per-year breakdown) and prints it without touching the
document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		if format != "json" && format != "yaml" {
			return fmt.Errorf("unsupported output format %q, use json or yaml", format)
		}

		cfg, aggregator, err := newAggregator()
		if err != nil {
			return err
		}
		report, err := aggregator.Aggregate(cmd.Context(), cfg.Login, time.Now())
		if err != nil {
			return fmt.Errorf("failed to aggregate stats: %w", err)
		}
		return writeStats(cmd.OutOrStdout(), format, report)
	},
}

// writeStats encodes the report and its yearly summary in the given format.
func writeStats(w io.Writer, format string, report *domain.Report) error {
	out := statsOutput{Report: *report, Summary: usecase.Summarize(report.Contributions)}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to marshal results to YAML: %w", err)
		}
		return enc.Close()
	default:
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonData))
		return err
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("output", "o", "json", "Output format (json|yaml)")
}
