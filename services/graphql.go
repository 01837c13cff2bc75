package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dickeyy/readme-prs/types"
	"github.com/rs/zerolog/log"
	"github.com/shurcooL/githubv4"
)

// GraphQL fetches PRs through the v4 search connection. Unlike REST search it
// reports MERGED as its own state.
type GraphQL struct {
	client *githubv4.Client
	maxPRs int
}

func NewGraphQL(httpClient *http.Client, endpoint string, maxPRs int) *GraphQL {
	var client *githubv4.Client
	if endpoint == "" {
		client = githubv4.NewClient(httpClient)
	} else {
		client = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return &GraphQL{client: client, maxPRs: maxPRs}
}

type prNode struct {
	Title      string
	URL        string
	Number     int
	State      string
	CreatedAt  githubv4.DateTime
	UpdatedAt  githubv4.DateTime
	Repository struct {
		NameWithOwner string
	}
}

type prSearchQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Nodes []struct {
			PullRequest prNode `graphql:"... on PullRequest"`
		}
	} `graphql:"search(query: $query, type: ISSUE, first: $first, after: $after)"`
}

func (g *GraphQL) FetchPRs(ctx context.Context, username string) ([]types.PullRequest, error) {
	vars := map[string]interface{}{
		"query": githubv4.String(SearchQuery(username) + " sort:updated-desc"),
		"first": githubv4.Int(searchPerPage),
		"after": (*githubv4.String)(nil),
	}

	log.Info().Str("user", username).Int("per_page", searchPerPage).Msg("begin fetching PRs via GraphQL")

	var prs []types.PullRequest
	for page := 1; ; page++ {
		var q prSearchQuery
		if err := g.client.Query(ctx, &q, vars); err != nil {
			return nil, fmt.Errorf("graphql search page %d: %w", page, err)
		}

		nodes := q.Search.Nodes
		if len(nodes) == 0 {
			break
		}

		for _, n := range nodes {
			node := n.PullRequest
			if node.Number == 0 {
				continue
			}
			repo := node.Repository.NameWithOwner
			if isOwnRepo(repo, username) {
				continue
			}
			prs = append(prs, types.PullRequest{
				Repo:      repo,
				Title:     node.Title,
				URL:       node.URL,
				Number:    node.Number,
				State:     strings.ToLower(node.State),
				CreatedAt: node.CreatedAt.Time,
				UpdatedAt: node.UpdatedAt.Time,
			})
		}

		log.Info().Int("page", page).Int("page_count", len(nodes)).Int("total_so_far", len(prs)).Msg("fetched PR page")

		if len(prs) >= g.maxPRs || !q.Search.PageInfo.HasNextPage {
			break
		}
		vars["after"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
	}

	if len(prs) > g.maxPRs {
		prs = prs[:g.maxPRs]
	}
	return prs, nil
}
