// Package table renders pull requests as the markdown table embedded in the README.
package table

import (
	"fmt"
	"strings"

	"github.com/dickeyy/readme-prs/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	header    = "| Sr No | Repository | PR Title | Status | Link |"
	separator = "|-------|------------|----------|--------|------|"

	// Placeholder fills every cell when there is nothing to list.
	Placeholder = "*No open source PRs found*"

	maxTitleLen = 50
)

const (
	glyphPending = "🟡"
	glyphDone    = "✅"
	glyphUnknown = "❓"
)

// Format returns the table, one row per PR in input order, without a trailing newline.
func Format(prs []types.PullRequest) string {
	if len(prs) == 0 {
		cells := []string{Placeholder, Placeholder, Placeholder, Placeholder, Placeholder}
		return strings.Join([]string{header, separator, "| " + strings.Join(cells, " | ") + " |"}, "\n")
	}

	lines := make([]string, 0, len(prs)+2)
	lines = append(lines, header, separator)
	for i, pr := range prs {
		lines = append(lines, fmt.Sprintf("| %d | [%s](https://github.com/%s) | %s | %s | [#%d](%s) |",
			i+1, pr.Repo, pr.Repo, TruncateTitle(pr.Title), Status(pr.State), pr.Number, pr.URL))
	}
	return strings.Join(lines, "\n")
}

// TruncateTitle keeps the first 50 characters and appends "..." when it cut anything.
func TruncateTitle(title string) string {
	r := []rune(title)
	if len(r) <= maxTitleLen {
		return title
	}
	return string(r[:maxTitleLen]) + "..."
}

// StatusGlyph maps a PR state to its marker. "merged" never comes back from
// REST search but the GraphQL backend reports it.
func StatusGlyph(state string) string {
	switch state {
	case "open":
		return glyphPending
	case "closed", "merged":
		return glyphDone
	default:
		return glyphUnknown
	}
}

// Status is the glyph followed by the title-cased state.
func Status(state string) string {
	return StatusGlyph(state) + " " + cases.Title(language.English).String(state)
}
