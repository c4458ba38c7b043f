package repair

import (
	"context"
	"fmt"

	"github.com/example/stackpr/internal/model"
)

// MigrationCode categorizes marker-era defects found while converting
// a boundary-marker stack to the shared-identifier representation.
type MigrationCode string

const (
	// MigrationUnclosedGroup indicates a Group-Start with no matching
	// Group-End above it.
	MigrationUnclosedGroup MigrationCode = "UNCLOSED_GROUP"

	// MigrationOrphanGroupEnd indicates a Group-End with no open
	// Group-Start below it.
	MigrationOrphanGroupEnd MigrationCode = "ORPHAN_GROUP_END"

	// MigrationOverlappingGroups indicates a second Group-Start before
	// the first group's Group-End.
	MigrationOverlappingGroups MigrationCode = "OVERLAPPING_GROUPS"
)

// MigrationError reports one marker-era defect. The migration refuses
// to guess which marker is wrong; the user fixes the markers (or runs
// the full group reset) and retries.
type MigrationError struct {
	Code MigrationCode

	// Commit is the hash of the commit carrying the offending marker,
	// or, for an unclosed group, the commit carrying the unmatched
	// start.
	Commit string

	// OpenCommit is the commit carrying the already-open start marker
	// when a second one appears. Set only for overlapping groups.
	OpenCommit string
}

// Error implements the error interface.
func (e *MigrationError) Error() string {
	switch e.Code {
	case MigrationOverlappingGroups:
		return fmt.Sprintf("%s: group started at %s before group at %s was closed",
			e.Code, model.ShortHash(e.Commit), model.ShortHash(e.OpenCommit))
	case MigrationOrphanGroupEnd:
		return fmt.Sprintf("%s: group end at %s has no matching start", e.Code, model.ShortHash(e.Commit))
	default:
		return fmt.Sprintf("%s: group started at %s is never closed", e.Code, model.ShortHash(e.Commit))
	}
}

// markerSpan is one well-formed start..end range found in the scan.
type markerSpan struct {
	first, last int
	title       string
}

// MigrateBoundaryMarkers converts a marker-era stack to the
// shared-identifier representation: each well-formed Group-Start ..
// Group-End span gets a freshly minted Group value on every member,
// the start marker's value becomes the stored title, and both markers
// are stripped.
//
// The pre-scan rejects the marker pairings the old representation
// could get out of sync on - unclosed groups, orphan ends, overlapping
// spans - as typed *MigrationError values before any history is
// touched. A stack with no markers is a successful no-op.
func (e *Engine) MigrateBoundaryMarkers(ctx context.Context) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}

	spans, err := scanMarkers(s.commits)
	if err != nil {
		return failure(err)
	}
	if len(spans) == 0 {
		return success()
	}

	groupIDs := make([]string, len(spans))
	plan := planOf(s.commits)
	for si, span := range spans {
		groupIDs[si] = e.newID()
		for i := span.first; i <= span.last; i++ {
			plan[i].set = map[string]string{model.TrailerGroup: groupIDs[si]}
			plan[i].remove = []string{model.TrailerGroupStart, model.TrailerGroupEnd}
		}
	}

	if result := e.run(ctx, s, plan); !result.Success {
		return result
	}

	for si, span := range spans {
		if span.title == "" {
			continue
		}
		if err := e.titles.SetTitle(ctx, groupIDs[si], span.title); err != nil {
			return failure(err)
		}
	}
	return success()
}

// scanMarkers pairs start and end markers into spans, reporting the
// first defect found in stack order. A commit may carry both markers
// (a one-commit group); its start is processed before its end.
func scanMarkers(commits []model.Commit) ([]markerSpan, error) {
	var spans []markerSpan
	open := -1
	openTitle := ""

	for i, c := range commits {
		if title, ok := c.Trailers[model.TrailerGroupStart]; ok {
			if open >= 0 {
				return nil, &MigrationError{
					Code:       MigrationOverlappingGroups,
					Commit:     c.Hash,
					OpenCommit: commits[open].Hash,
				}
			}
			open = i
			openTitle = title
		}
		if _, ok := c.Trailers[model.TrailerGroupEnd]; ok {
			if open < 0 {
				return nil, &MigrationError{Code: MigrationOrphanGroupEnd, Commit: c.Hash}
			}
			spans = append(spans, markerSpan{first: open, last: i, title: openTitle})
			open = -1
			openTitle = ""
		}
	}

	if open >= 0 {
		return nil, &MigrationError{Code: MigrationUnclosedGroup, Commit: commits[open].Hash}
	}
	return spans, nil
}
