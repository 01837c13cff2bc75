package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dickeyy/readme-prs/types"
	"github.com/google/go-github/v74/github"
	"github.com/rs/zerolog/log"
)

// GitHub fetches PRs through the REST issue search endpoint.
type GitHub struct {
	client *github.Client
	maxPRs int
}

func NewGitHub(httpClient *http.Client, baseURL string, maxPRs int) (*GitHub, error) {
	client := github.NewClient(httpClient)
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse api url: %w", err)
		}
		client.BaseURL = u
	}
	log.Info().Str("base_url", client.BaseURL.String()).Msg("GitHub client initialized")
	return &GitHub{client: client, maxPRs: maxPRs}, nil
}

// FetchPRs pages through search results until a page comes back empty or
// maxPRs records have been collected. A non-2xx response ends pagination and
// whatever was gathered so far is returned without error; failures that
// produce no response at all are returned.
func (g *GitHub) FetchPRs(ctx context.Context, username string) ([]types.PullRequest, error) {
	opts := &github.SearchOptions{
		Sort:  "updated",
		Order: "desc",
		ListOptions: github.ListOptions{
			PerPage: searchPerPage,
			Page:    1,
		},
	}
	query := SearchQuery(username)

	log.Info().Str("user", username).Int("per_page", opts.PerPage).Msg("begin fetching PRs")

	var prs []types.PullRequest
	for {
		log.Debug().Str("user", username).Int("page", opts.Page).Msg("fetching PR page")

		result, resp, err := g.client.Search.Issues(ctx, query, opts)
		if err != nil {
			if resp != nil && resp.Response != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
				log.Error().Int("status", resp.StatusCode).Int("page", opts.Page).Err(err).Msg("error fetching PRs")
				break
			}
			return nil, fmt.Errorf("search page %d: %w", opts.Page, err)
		}

		if len(result.Issues) == 0 {
			break
		}

		skipped := 0
		for _, issue := range result.Issues {
			pr := prFromIssue(issue)
			if isOwnRepo(pr.Repo, username) {
				skipped++
				continue
			}
			prs = append(prs, pr)
		}

		log.Info().
			Int("page", opts.Page).
			Int("page_count", len(result.Issues)).
			Int("skipped_own", skipped).
			Int("total_so_far", len(prs)).
			Int("rate_remaining", resp.Rate.Remaining).
			Msg("fetched PR page")

		opts.Page++
		if len(prs) >= g.maxPRs {
			break
		}
	}

	if len(prs) > g.maxPRs {
		prs = prs[:g.maxPRs]
	}
	return prs, nil
}

func prFromIssue(issue *github.Issue) types.PullRequest {
	return types.PullRequest{
		Repo:      repoFromURL(issue.GetRepositoryURL()),
		Title:     issue.GetTitle(),
		URL:       issue.GetHTMLURL(),
		Number:    issue.GetNumber(),
		State:     issue.GetState(),
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
	}
}
