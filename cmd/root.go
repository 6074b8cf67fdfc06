// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/naka-gawa/readme-stats/internal/config"
	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/gateway"
	"github.com/naka-gawa/readme-stats/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
const (
	exitFailure        = 1
	exitConfigError    = 2
	exitMarkerNotFound = 3
)

var (
	verbose bool
	envFile string
	dryRun  bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "readme-stats",
	Short: "A CLI tool to refresh the stats section of a GitHub profile README.",
	Long: `readme-stats queries the GitHub GraphQL API for the account named by
GITHUB_ACTOR (join date, repositories, languages and lifetime contributions)
and rewrites the section of README.md between the stats markers.

Configuration is read from the environment (GH_TOKEN, GITHUB_ACTOR, ...).
Running without a subcommand is the same as "readme-stats update".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runUpdate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a distinguishable process status.
func exitCode(err error) int {
	var notFound *domain.MarkerNotFoundError
	var cfgErr *domain.ConfigError
	switch {
	case errors.As(err, &notFound):
		return exitMarkerNotFound
	case errors.As(err, &cfgErr):
		return exitConfigError
	default:
		return exitFailure
	}
}

// newAggregator loads the configuration and wires the gateway into an aggregator.
func newAggregator() (*config.Config, *usecase.Aggregator, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	githubGateway, err := gateway.NewGitHubGateway(cfg.Endpoint, cfg.Token, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return cfg, usecase.NewAggregator(githubGateway, logger), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file; existing environment variables take precedence")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the generated Markdown instead of writing the document")
}
