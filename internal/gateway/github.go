// Package gateway provides a gateway to the GitHub GraphQL API,
// abstracting away the underlying HTTP and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// DefaultEndpoint is the public GitHub GraphQL endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

const (
	repositoryPageSize = 100
	languagePageSize   = 10
)

// Querier performs a single GraphQL query. *githubv4.Client satisfies it.
type Querier interface {
	Query(ctx context.Context, q interface{}, variables map[string]interface{}) error
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, login string) (*domain.Profile, error)
	FetchContributions(ctx context.Context, login string, window domain.YearWindow) (domain.YearContribution, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client Querier
	logger *zap.Logger
}

// profileQuery fetches the account creation time and the repositories
// used for language and star totals. Only the first page is requested.
type profileQuery struct {
	User struct {
		Login        githubv4.String
		CreatedAt    githubv4.DateTime
		Repositories *struct {
			Nodes []struct {
				Name           githubv4.String
				StargazerCount githubv4.Int
				Languages      struct {
					Edges []struct {
						Size githubv4.Int
						Node struct {
							Name  githubv4.String
							Color githubv4.String
						}
					}
				} `graphql:"languages(first: $languageCount, orderBy: {field: SIZE, direction: DESC})"`
			}
		} `graphql:"repositories(first: $repositoryCount, ownerAffiliations: [OWNER, COLLABORATOR], isFork: false, orderBy: {field: PUSHED_AT, direction: DESC})"`
	} `graphql:"user(login: $login)"`
}

// contributionsQuery fetches the contribution counts of a single window.
type contributionsQuery struct {
	User struct {
		Login                   githubv4.String
		ContributionsCollection *struct {
			TotalCommitContributions                githubv4.Int
			RestrictedContributionsCount            githubv4.Int
			TotalPullRequestContributions           githubv4.Int
			TotalIssueContributions                 githubv4.Int
			TotalRepositoriesWithContributedCommits githubv4.Int
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway creates a gateway that talks to endpoint with a bearer token.
// Secondary rate limits are logged and returned as errors, never slept on.
func NewGitHubGateway(endpoint, token string, logger *zap.Logger) (*GitHubGateway, error) {
	rateLimitDetector, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(0, func(*github_ratelimit.CallbackContext) {
			logger.Warn("secondary rate limit hit, not retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit detector: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitDetector,
			Source: ts,
		},
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return NewGateway(githubv4.NewEnterpriseClient(endpoint, httpClient), logger), nil
}

// NewGateway wraps an existing Querier.
func NewGateway(client Querier, logger *zap.Logger) *GitHubGateway {
	return &GitHubGateway{client: client, logger: logger}
}

// query runs exactly one request and classifies any failure as a transport error.
func (g *GitHubGateway) query(ctx context.Context, op string, q interface{}, variables map[string]interface{}) error {
	if err := g.client.Query(ctx, q, variables); err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	return nil
}

// FetchProfile fetches the creation time and up to 100 recently pushed repositories.
func (g *GitHubGateway) FetchProfile(ctx context.Context, login string) (*domain.Profile, error) {
	g.logger.Info("fetching profile", zap.String("login", login))
	var q profileQuery
	variables := map[string]interface{}{
		"login":           githubv4.String(login),
		"repositoryCount": githubv4.Int(repositoryPageSize),
		"languageCount":   githubv4.Int(languagePageSize),
	}
	if err := g.query(ctx, "profile query", &q, variables); err != nil {
		return nil, err
	}
	if q.User.Login == "" {
		return nil, &domain.SchemaError{Op: "profile query", Field: "user"}
	}
	if q.User.CreatedAt.IsZero() {
		return nil, &domain.SchemaError{Op: "profile query", Field: "user.createdAt"}
	}
	if q.User.Repositories == nil {
		return nil, &domain.SchemaError{Op: "profile query", Field: "user.repositories"}
	}

	profile := &domain.Profile{
		Login:        string(q.User.Login),
		CreatedAt:    q.User.CreatedAt.UTC(),
		Repositories: make([]domain.Repository, 0, len(q.User.Repositories.Nodes)),
	}
	for _, node := range q.User.Repositories.Nodes {
		repo := domain.Repository{
			Name:      string(node.Name),
			Stars:     int(node.StargazerCount),
			Languages: make([]domain.LanguageEdge, 0, len(node.Languages.Edges)),
		}
		for _, edge := range node.Languages.Edges {
			repo.Languages = append(repo.Languages, domain.LanguageEdge{
				Name:  string(edge.Node.Name),
				Size:  int64(edge.Size),
				Color: string(edge.Node.Color),
			})
		}
		profile.Repositories = append(profile.Repositories, repo)
	}
	g.logger.Debug("fetched profile",
		zap.Time("created_at", profile.CreatedAt),
		zap.Int("repositories", len(profile.Repositories)))
	return profile, nil
}

// FetchContributions fetches the contribution counts for one window.
func (g *GitHubGateway) FetchContributions(ctx context.Context, login string, window domain.YearWindow) (domain.YearContribution, error) {
	g.logger.Info("fetching stats for year", zap.Int("year", window.Year))
	var q contributionsQuery
	variables := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: window.Start},
		"to":    githubv4.DateTime{Time: window.End},
	}
	op := fmt.Sprintf("contributions query for %d", window.Year)
	if err := g.query(ctx, op, &q, variables); err != nil {
		return domain.YearContribution{}, err
	}
	if q.User.Login == "" {
		return domain.YearContribution{}, &domain.SchemaError{Op: op, Field: "user"}
	}
	cc := q.User.ContributionsCollection
	if cc == nil {
		return domain.YearContribution{}, &domain.SchemaError{Op: op, Field: "user.contributionsCollection"}
	}
	return domain.YearContribution{
		Year:              window.Year,
		Commits:           int(cc.TotalCommitContributions),
		RestrictedCommits: int(cc.RestrictedContributionsCount),
		PullRequests:      int(cc.TotalPullRequestContributions),
		Issues:            int(cc.TotalIssueContributions),
		ReposWithCommits:  int(cc.TotalRepositoriesWithContributedCommits),
	}, nil
}
