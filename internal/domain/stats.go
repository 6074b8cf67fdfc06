// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Account holds the two instants every run is anchored to.
type Account struct {
	Login     string    `json:"login" yaml:"login"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Now       time.Time `json:"now" yaml:"now"`
}

// YearsJoined is the difference of the calendar years, not elapsed full years.
func (a Account) YearsJoined() int {
	return a.Now.UTC().Year() - a.CreatedAt.UTC().Year()
}

// LanguageEdge is one language entry of a repository.
type LanguageEdge struct {
	Name  string
	Size  int64
	Color string
}

// Repository is an owned or collaborated, non-fork repository.
type Repository struct {
	Name      string
	Stars     int
	Languages []LanguageEdge
}

// Profile is the result of the profile query.
type Profile struct {
	Login        string
	CreatedAt    time.Time
	Repositories []Repository
}

// LanguageTotal is the accumulated size of one language across all repositories.
type LanguageTotal struct {
	Name       string  `json:"name" yaml:"name"`
	Size       int64   `json:"size" yaml:"size"`
	Color      string  `json:"color" yaml:"color"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// YearWindow is a contribution window for a single calendar year.
type YearWindow struct {
	Year  int
	Start time.Time
	End   time.Time
}

// YearContribution holds the counts reported for one window.
type YearContribution struct {
	Year              int `json:"year" yaml:"year"`
	Commits           int `json:"commits" yaml:"commits"`
	RestrictedCommits int `json:"restricted_commits" yaml:"restricted_commits"`
	PullRequests      int `json:"pull_requests" yaml:"pull_requests"`
	Issues            int `json:"issues" yaml:"issues"`
	ReposWithCommits  int `json:"repos_with_commits" yaml:"repos_with_commits"`
}

// ContributionTotals accumulates the counts of all windows.
// Commits already includes RestrictedCommits.
type ContributionTotals struct {
	Commits           int                `json:"commits" yaml:"commits"`
	RestrictedCommits int                `json:"restricted_commits" yaml:"restricted_commits"`
	PullRequests      int                `json:"pull_requests" yaml:"pull_requests"`
	Issues            int                `json:"issues" yaml:"issues"`
	ReposWithCommits  int                `json:"repos_with_commits" yaml:"repos_with_commits"`
	PerYear           []YearContribution `json:"per_year" yaml:"per_year"`
}

// Add folds a single window into the totals.
func (t *ContributionTotals) Add(c YearContribution) {
	t.Commits += c.Commits + c.RestrictedCommits
	t.RestrictedCommits += c.RestrictedCommits
	t.PullRequests += c.PullRequests
	t.Issues += c.Issues
	t.ReposWithCommits += c.ReposWithCommits
	t.PerYear = append(t.PerYear, c)
}

// Report is everything rendered into the document for one run.
type Report struct {
	Account         Account            `json:"account" yaml:"account"`
	YearsJoined     int                `json:"years_joined" yaml:"years_joined"`
	Contributions   ContributionTotals `json:"contributions" yaml:"contributions"`
	Stars           int                `json:"stars" yaml:"stars"`
	RepositoryCount int                `json:"repository_count" yaml:"repository_count"`
	Languages       []LanguageTotal    `json:"languages" yaml:"languages"`
}
