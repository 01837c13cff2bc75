package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dickeyy/readme-prs/config"
	"github.com/dickeyy/readme-prs/types"
)

const searchPerPage = 100

// Fetcher lists PRs authored by username, newest update first, skipping PRs
// against the user's own repositories.
type Fetcher interface {
	FetchPRs(ctx context.Context, username string) ([]types.PullRequest, error)
}

// NewFetcher builds the backend selected by cfg.Source.
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	httpClient := NewHTTPClient(cfg.Token)
	switch cfg.Source {
	case config.SourceGraphQL:
		return NewGraphQL(httpClient, cfg.GraphQLURL, cfg.MaxPRs), nil
	case config.SourceREST, "":
		return NewGitHub(httpClient, cfg.APIBaseURL, cfg.MaxPRs)
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// SearchQuery is the issue search expression for public PRs by username.
func SearchQuery(username string) string {
	return fmt.Sprintf("author:%s is:pr is:public", username)
}

func isOwnRepo(repo, username string) bool {
	return strings.HasPrefix(repo, username+"/")
}

// repoFromURL turns .../repos/<owner>/<name> into "<owner>/<name>".
func repoFromURL(u string) string {
	parts := strings.Split(u, "/")
	if len(parts) < 2 {
		return u
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
