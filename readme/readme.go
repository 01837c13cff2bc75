// Package readme owns the generated region of a markdown document.
package readme

import (
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog/log"
)

const (
	StartMarker = "<!-- PR_TABLE_START -->"
	EndMarker   = "<!-- PR_TABLE_END -->"
)

var spanPattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(StartMarker) + `.*?` + regexp.QuoteMeta(EndMarker))

// FileAccessError reports a failed read or write of the target document.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// Replace swaps the first marker span in content for the markers wrapped around
// table. ok is false when no span exists, in which case content is returned as is.
func Replace(content, table string) (out string, ok bool) {
	loc := spanPattern.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	return content[:loc[0]] + StartMarker + "\n" + table + "\n" + EndMarker + content[loc[1]:], true
}

// Update rewrites the marker span of the file at path. A document without
// markers is written back unchanged.
func Update(path, table string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &FileAccessError{Op: "read", Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &FileAccessError{Op: "read", Path: path, Err: err}
	}

	content, ok := Replace(string(data), table)
	if !ok {
		log.Warn().Str("path", path).Str("start", StartMarker).Str("end", EndMarker).Msg("markers not found; document left unchanged")
	}

	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	log.Debug().Str("path", path).Bool("replaced", ok).Int("bytes", len(content)).Msg("document written")
	return nil
}
