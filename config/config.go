package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SourceREST    = "rest"
	SourceGraphQL = "graphql"
)

// Config is built once in main and handed to every component.
type Config struct {
	Username    string `env:"PR_TABLE_USER,GITHUB_REPOSITORY_OWNER" env-description:"GitHub login whose PRs are listed"`
	Token       string `env:"GITHUB_TOKEN" env-description:"optional token, raises the search rate limit"`
	APIBaseURL  string `env:"GITHUB_API_URL" env-default:"https://api.github.com/"`
	GraphQLURL  string `env:"GITHUB_GRAPHQL_URL" env-default:"https://api.github.com/graphql"`
	ReadmePath  string `env:"PR_TABLE_README" env-default:"README.md"`
	Source      string `env:"PR_TABLE_SOURCE" env-default:"rest"`
	MaxPRs      int    `env:"PR_TABLE_MAX" env-default:"20"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	DryRun      bool   `env:"PR_TABLE_DRY_RUN" env-default:"false"`
}

// Load reads the environment and then lets command-line flags override it.
func Load(args []string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	fs := flag.NewFlagSet("readme-prs", flag.ContinueOnError)
	fs.StringVar(&cfg.Username, "user", cfg.Username, "GitHub username whose PRs are listed")
	fs.StringVar(&cfg.ReadmePath, "readme", cfg.ReadmePath, "Path of the document to update")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "Fetch backend: rest or graphql")
	fs.IntVar(&cfg.MaxPRs, "max", cfg.MaxPRs, "Maximum number of PRs in the table")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Print the table instead of writing the document")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if !strings.HasSuffix(cfg.APIBaseURL, "/") {
		cfg.APIBaseURL += "/"
	}
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Username == "" {
		return errors.New("username is required (-user or PR_TABLE_USER)")
	}
	if c.ReadmePath == "" && !c.DryRun {
		return errors.New("readme path is required")
	}
	if c.MaxPRs < 1 {
		return fmt.Errorf("max must be at least 1, got %d", c.MaxPRs)
	}
	switch c.Source {
	case SourceREST, SourceGraphQL:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	return nil
}
