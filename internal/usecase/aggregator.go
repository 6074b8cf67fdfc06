// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/gateway"
	"go.uber.org/zap"
)

// Aggregator is the use case for aggregating GitHub stats.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *zap.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Aggregate fetches the profile and every yearly window for login and
// builds the report. now is the instant the run started.
// Calls are issued one at a time; the first failure aborts the run.
func (a *Aggregator) Aggregate(ctx context.Context, login string, now time.Time) (*domain.Report, error) {
	a.logger.Debug("usecase: starting data aggregation", zap.String("login", login))

	profile, err := a.fetcher.FetchProfile(ctx, login)
	if err != nil {
		return nil, err
	}
	account := domain.Account{
		Login:     profile.Login,
		CreatedAt: profile.CreatedAt.UTC(),
		Now:       now.UTC(),
	}

	report := &domain.Report{
		Account:         account,
		YearsJoined:     account.YearsJoined(),
		RepositoryCount: len(profile.Repositories),
		Languages:       AggregateLanguages(profile.Repositories),
	}
	for _, repo := range profile.Repositories {
		report.Stars += repo.Stars
	}

	totals, err := a.Contributions(ctx, login, account)
	if err != nil {
		return nil, err
	}
	report.Contributions = totals

	a.logger.Debug("usecase: aggregation complete",
		zap.Int("commits", totals.Commits),
		zap.Int("languages", len(report.Languages)))
	return report, nil
}

// Contributions sums the counts of every yearly window of the account's lifetime.
func (a *Aggregator) Contributions(ctx context.Context, login string, account domain.Account) (domain.ContributionTotals, error) {
	var totals domain.ContributionTotals
	for _, window := range YearWindows(account.CreatedAt, account.Now) {
		c, err := a.fetcher.FetchContributions(ctx, login, window)
		if err != nil {
			return domain.ContributionTotals{}, err
		}
		totals.Add(c)
	}
	return totals, nil
}

// YearWindows splits [createdAt, now] into one window per calendar year in UTC.
// The first window starts at createdAt and the last one ends at now.
func YearWindows(createdAt, now time.Time) []domain.YearWindow {
	createdAt, now = createdAt.UTC(), now.UTC()
	if now.Before(createdAt) {
		return nil
	}
	windows := make([]domain.YearWindow, 0, now.Year()-createdAt.Year()+1)
	for year := createdAt.Year(); year <= now.Year(); year++ {
		w := domain.YearWindow{
			Year:  year,
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
		}
		if year == createdAt.Year() {
			w.Start = createdAt
		}
		if year == now.Year() {
			w.End = now
		}
		windows = append(windows, w)
	}
	return windows
}

// AggregateLanguages merges the languages of all repositories, keeping the
// first color seen for each name, and ranks them by size descending.
// Equal sizes keep the order in which the languages were first seen.
func AggregateLanguages(repos []domain.Repository) []domain.LanguageTotal {
	index := make(map[string]int)
	totals := make([]domain.LanguageTotal, 0)
	var totalSize int64
	for _, repo := range repos {
		for _, edge := range repo.Languages {
			totalSize += edge.Size
			i, ok := index[edge.Name]
			if !ok {
				index[edge.Name] = len(totals)
				totals = append(totals, domain.LanguageTotal{Name: edge.Name, Color: edge.Color})
				i = len(totals) - 1
			}
			totals[i].Size += edge.Size
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Size > totals[j].Size
	})

	if totalSize > 0 {
		for i := range totals {
			totals[i].Percentage = 100 * float64(totals[i].Size) / float64(totalSize)
		}
	}
	return totals
}
