package usecase

import (
	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/readme-stats/internal/domain"
)

// YearlySummary describes how commits are spread over the yearly windows.
type YearlySummary struct {
	Years              int     `json:"years" yaml:"years"`
	MeanCommits        float64 `json:"mean_commits" yaml:"mean_commits"`
	MedianCommits      float64 `json:"median_commits" yaml:"median_commits"`
	BusiestYear        int     `json:"busiest_year" yaml:"busiest_year"`
	BusiestYearCommits int     `json:"busiest_year_commits" yaml:"busiest_year_commits"`
}

// Summarize computes the yearly summary. Commits include restricted contributions.
func Summarize(totals domain.ContributionTotals) YearlySummary {
	summary := YearlySummary{Years: len(totals.PerYear)}
	if len(totals.PerYear) == 0 {
		return summary
	}

	commits := make(stats.Float64Data, 0, len(totals.PerYear))
	for _, y := range totals.PerYear {
		n := y.Commits + y.RestrictedCommits
		commits = append(commits, float64(n))
		if n > summary.BusiestYearCommits || summary.BusiestYear == 0 {
			summary.BusiestYear = y.Year
			summary.BusiestYearCommits = n
		}
	}
	// Errors only occur on empty input, which is excluded above.
	summary.MeanCommits, _ = commits.Mean()
	summary.MedianCommits, _ = commits.Median()
	return summary
}
