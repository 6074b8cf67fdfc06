package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchProfile(ctx context.Context, login string) (*domain.Profile, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockFetcher) FetchContributions(ctx context.Context, login string, window domain.YearWindow) (domain.YearContribution, error) {
	args := m.Called(ctx, login, window)
	return args.Get(0).(domain.YearContribution), args.Error(1)
}

// windowFor matches the window of a given year.
func windowFor(year int) interface{} {
	return mock.MatchedBy(func(w domain.YearWindow) bool { return w.Year == year })
}

func TestYearWindows(t *testing.T) {
	createdAt := time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)
	now := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	windows := YearWindows(createdAt, now)

	require.Len(t, windows, 4)
	assert.Equal(t, []int{2020, 2021, 2022, 2023}, []int{windows[0].Year, windows[1].Year, windows[2].Year, windows[3].Year})
	assert.Equal(t, createdAt, windows[0].Start, "creation year starts at the creation instant")
	assert.Equal(t, time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC), windows[0].End)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), windows[1].Start)
	assert.Equal(t, time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC), windows[2].End)
	assert.Equal(t, now, windows[3].End, "current year ends at the run-start instant")
}

func TestYearWindows_Properties(t *testing.T) {
	testCases := []struct {
		name      string
		createdAt time.Time
		now       time.Time
	}{
		{name: "same year", createdAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), now: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)},
		{name: "december account", createdAt: time.Date(2019, 12, 31, 23, 0, 0, 0, time.UTC), now: time.Date(2020, 1, 1, 1, 0, 0, 0, time.UTC)},
		{name: "long lived", createdAt: time.Date(2008, 4, 10, 0, 0, 0, 0, time.UTC), now: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)},
		{name: "non UTC input", createdAt: time.Date(2015, 1, 1, 3, 0, 0, 0, time.FixedZone("JST", 9*3600)), now: time.Date(2016, 5, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			windows := YearWindows(tc.createdAt, tc.now)

			require.Len(t, windows, tc.now.UTC().Year()-tc.createdAt.UTC().Year()+1)
			assert.True(t, windows[0].Start.Equal(tc.createdAt))
			assert.True(t, windows[len(windows)-1].End.Equal(tc.now))
			for i, w := range windows {
				assert.Equal(t, time.UTC, w.Start.Location())
				assert.False(t, w.End.Before(w.Start), "window %d is inverted", w.Year)
				if i > 0 {
					assert.True(t, windows[i-1].End.Before(w.Start), "windows %d and %d overlap", windows[i-1].Year, w.Year)
					assert.Equal(t, time.Second, w.Start.Sub(windows[i-1].End))
				}
			}
		})
	}

	t.Run("clock before creation yields no windows", func(t *testing.T) {
		assert.Empty(t, YearWindows(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestAggregateLanguages(t *testing.T) {
	t.Run("ranks by size with percentages", func(t *testing.T) {
		repos := []domain.Repository{
			{Languages: []domain.LanguageEdge{{Name: "Go", Size: 300, Color: "#00ADD8"}}},
			{Languages: []domain.LanguageEdge{{Name: "Rust", Size: 700, Color: "#dea584"}}},
		}

		got := AggregateLanguages(repos)

		require.Len(t, got, 2)
		assert.Equal(t, "Rust", got[0].Name)
		assert.InDelta(t, 70.0, got[0].Percentage, 1e-9)
		assert.Equal(t, "Go", got[1].Name)
		assert.InDelta(t, 30.0, got[1].Percentage, 1e-9)
	})

	t.Run("first seen color wins and sizes accumulate", func(t *testing.T) {
		repos := []domain.Repository{
			{Languages: []domain.LanguageEdge{{Name: "Go", Size: 10, Color: "#first"}, {Name: "Shell", Size: 5}}},
			{Languages: []domain.LanguageEdge{{Name: "Go", Size: 15, Color: "#second"}}},
		}

		got := AggregateLanguages(repos)

		assert.Equal(t, []domain.LanguageTotal{
			{Name: "Go", Size: 25, Color: "#first", Percentage: 100 * 25.0 / 30.0},
			{Name: "Shell", Size: 5, Color: "", Percentage: 100 * 5.0 / 30.0},
		}, got)
	})

	t.Run("ties keep insertion order", func(t *testing.T) {
		repos := []domain.Repository{
			{Languages: []domain.LanguageEdge{{Name: "C", Size: 1}, {Name: "B", Size: 5}, {Name: "A", Size: 5}}},
			{Languages: []domain.LanguageEdge{{Name: "D", Size: 5}}},
		}

		got := AggregateLanguages(repos)

		names := make([]string, 0, len(got))
		for _, l := range got {
			names = append(names, l.Name)
		}
		assert.Equal(t, []string{"B", "A", "D", "C"}, names)
	})

	t.Run("zero total yields zero percentages", func(t *testing.T) {
		repos := []domain.Repository{{Languages: []domain.LanguageEdge{{Name: "Go", Size: 0}, {Name: "C", Size: 0}}}}

		for _, l := range AggregateLanguages(repos) {
			assert.Zero(t, l.Percentage)
		}
		assert.Empty(t, AggregateLanguages(nil))
	})

	t.Run("sizes are conserved and percentages sum to 100", func(t *testing.T) {
		var repos []domain.Repository
		var inputSum int64
		for i := 0; i < 30; i++ {
			repo := domain.Repository{}
			for j := 0; j <= i%10; j++ {
				size := int64((i+1)*(j+3)*37) % 9973
				repo.Languages = append(repo.Languages, domain.LanguageEdge{Name: string(rune('A' + (i*j)%13)), Size: size})
				inputSum += size
			}
			repos = append(repos, repo)
		}

		got := AggregateLanguages(repos)

		var outputSum int64
		var pct float64
		for _, l := range got {
			outputSum += l.Size
			pct += l.Percentage
		}
		assert.Equal(t, inputSum, outputSum)
		assert.InDelta(t, 100.0, pct, 1e-9)
	})
}

func TestAggregator_Aggregate(t *testing.T) {
	createdAt := time.Date(2021, 6, 15, 12, 0, 0, 0, time.UTC)
	now := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	profile := &domain.Profile{
		Login:     "octocat",
		CreatedAt: createdAt,
		Repositories: []domain.Repository{
			{Name: "a", Stars: 3, Languages: []domain.LanguageEdge{{Name: "Go", Size: 300}}},
			{Name: "b", Stars: 4, Languages: []domain.LanguageEdge{{Name: "Rust", Size: 700}}},
		},
	}

	testCases := []struct {
		name           string
		profileErr     error
		failingYear    int
		expectedCalls  int
		expectedReport *domain.Report
		expectError    bool
	}{
		{
			name:          "happy path - sums every yearly window",
			expectedCalls: 3,
			expectedReport: &domain.Report{
				Account:         domain.Account{Login: "octocat", CreatedAt: createdAt, Now: now},
				YearsJoined:     2,
				Stars:           7,
				RepositoryCount: 2,
				Languages: []domain.LanguageTotal{
					{Name: "Rust", Size: 700, Percentage: 70},
					{Name: "Go", Size: 300, Percentage: 30},
				},
				Contributions: domain.ContributionTotals{
					Commits: 36, RestrictedCommits: 3, PullRequests: 6, Issues: 9, ReposWithCommits: 3,
					PerYear: []domain.YearContribution{
						{Year: 2021, Commits: 10, RestrictedCommits: 1, PullRequests: 2, Issues: 3, ReposWithCommits: 1},
						{Year: 2022, Commits: 10, RestrictedCommits: 1, PullRequests: 2, Issues: 3, ReposWithCommits: 1},
						{Year: 2023, Commits: 10, RestrictedCommits: 1, PullRequests: 2, Issues: 3, ReposWithCommits: 1},
					},
				},
			},
		},
		{
			name:          "error case - profile fetch fails",
			profileErr:    &domain.TransportError{Op: "profile query", Err: errors.New("boom")},
			expectedCalls: 0,
			expectError:   true,
		},
		{
			name:          "error case - fail fast on the first failing year",
			failingYear:   2022,
			expectedCalls: 2,
			expectError:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			if tc.profileErr != nil {
				fetcher.On("FetchProfile", mock.Anything, "octocat").Return(nil, tc.profileErr)
			} else {
				fetcher.On("FetchProfile", mock.Anything, "octocat").Return(profile, nil)
			}
			for year := 2021; year <= 2023; year++ {
				c := domain.YearContribution{Year: year, Commits: 10, RestrictedCommits: 1, PullRequests: 2, Issues: 3, ReposWithCommits: 1}
				if year == tc.failingYear {
					fetcher.On("FetchContributions", mock.Anything, "octocat", windowFor(year)).
						Return(domain.YearContribution{}, &domain.SchemaError{Op: "contributions", Field: "user"}).Maybe()
					continue
				}
				fetcher.On("FetchContributions", mock.Anything, "octocat", windowFor(year)).Return(c, nil).Maybe()
			}

			report, err := NewAggregator(fetcher, zap.NewNop()).Aggregate(context.Background(), "octocat", now)

			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, report)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedReport, report)
			}
			fetcher.AssertNumberOfCalls(t, "FetchContributions", tc.expectedCalls)
			fetcher.AssertExpectations(t)
		})
	}
}

func TestSummarize(t *testing.T) {
	totals := domain.ContributionTotals{PerYear: []domain.YearContribution{
		{Year: 2021, Commits: 10},
		{Year: 2022, Commits: 40, RestrictedCommits: 20},
		{Year: 2023, Commits: 30},
	}}

	got := Summarize(totals)

	assert.Equal(t, 3, got.Years)
	assert.InDelta(t, 100.0/3.0, got.MeanCommits, 1e-9)
	assert.InDelta(t, 30.0, got.MedianCommits, 1e-9)
	assert.Equal(t, 2022, got.BusiestYear)
	assert.Equal(t, 60, got.BusiestYearCommits)

	assert.Equal(t, YearlySummary{}, Summarize(domain.ContributionTotals{}))
}
