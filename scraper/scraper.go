package scraper

import (
	"context"
	"fmt"
	"io"

	"github.com/dickeyy/readme-prs/config"
	"github.com/dickeyy/readme-prs/readme"
	"github.com/dickeyy/readme-prs/services"
	"github.com/dickeyy/readme-prs/table"
	"github.com/dickeyy/readme-prs/types"
	"github.com/rs/zerolog/log"
)

// Recorder persists fetched PRs. It is optional.
type Recorder interface {
	RecordPRs(ctx context.Context, prs []types.PullRequest) error
}

// Run fetches the user's PRs, renders the table and writes it into the
// configured document. In dry-run mode the table goes to out instead.
func Run(ctx context.Context, cfg *config.Config, fetcher services.Fetcher, rec Recorder, out io.Writer) error {
	log.Info().Str("user", cfg.Username).Str("source", cfg.Source).Msg("fetching open source PRs")

	prs, err := fetcher.FetchPRs(ctx, cfg.Username)
	if err != nil {
		return fmt.Errorf("fetch PRs: %w", err)
	}
	log.Info().Int("count", len(prs)).Msg("found open source PRs")

	if rec != nil {
		if err := rec.RecordPRs(ctx, prs); err != nil {
			return err
		}
	}

	rendered := table.Format(prs)

	if cfg.DryRun {
		if _, err := fmt.Fprintln(out, rendered); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
		log.Info().Int("count", len(prs)).Msg("dry run, document not modified")
		return nil
	}

	if err := readme.Update(cfg.ReadmePath, rendered); err != nil {
		return err
	}
	log.Info().Str("path", cfg.ReadmePath).Int("count", len(prs)).Msg("✅ updated document with open source PRs")
	return nil
}
