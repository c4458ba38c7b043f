package stack

import (
	"github.com/example/stackpr/internal/model"
)

// ValidationResult is the outcome of Validate: either OK with the
// derived unit list, or a typed violation carrying full repair context.
type ValidationResult struct {
	OK    bool           `json:"ok"`
	Units []model.PRUnit `json:"units,omitempty"`
	Err   *ValidationError `json:"error,omitempty"`
}

// Validate checks the group contiguity invariant over the commit
// sequence and, when it holds, delegates to Detect.
//
// The contiguity scan must run before detection: Detect's linear fold
// cannot distinguish "one contiguous group" from "the same group id
// reused after an interruption" - it would silently treat the reused id
// as two separate groups, masking the corruption. Validate is a
// precondition gate, not a post-hoc consistency check.
//
// The first adjacency gap found is reported; positions are scanned in
// stack order and groups in order of first appearance, so the result is
// deterministic for a given sequence.
func Validate(commits []model.Commit, titles model.GroupTitles) ValidationResult {
	positions := make(map[string][]int)
	var order []string

	for i, c := range commits {
		groupID := c.Group()
		if groupID == "" {
			continue
		}
		if _, seen := positions[groupID]; !seen {
			order = append(order, groupID)
		}
		positions[groupID] = append(positions[groupID], i)
	}

	for _, groupID := range order {
		pos := positions[groupID]
		for i := 0; i+1 < len(pos); i++ {
			if pos[i+1] == pos[i]+1 {
				continue
			}
			return ValidationResult{
				Err: splitGroupError(commits, titles, groupID, pos, pos[i], pos[i+1]),
			}
		}
	}

	return ValidationResult{
		OK:    true,
		Units: Detect(commits, titles),
	}
}

// splitGroupError builds the repair context for the first gap found in
// a group's recorded positions.
func splitGroupError(commits []model.Commit, titles model.GroupTitles, groupID string, positions []int, gapFrom, gapTo int) *ValidationError {
	members := make([]string, 0, len(positions))
	for _, p := range positions {
		members = append(members, commits[p].Hash)
	}

	var interrupting []string
	for i := gapFrom + 1; i < gapTo; i++ {
		interrupting = append(interrupting, commits[i].Hash)
	}

	return &ValidationError{
		Code:                ErrCodeSplitGroup,
		GroupID:             groupID,
		GroupTitle:          resolveGroupTitle(titles, groupID, commits[positions[0]].Subject),
		GroupCommits:        members,
		InterruptingCommits: interrupting,
	}
}

// resolveGroupTitle picks the display title for violation reports:
// stored title, else the first member's subject, else "Unknown".
func resolveGroupTitle(titles model.GroupTitles, groupID, firstSubject string) string {
	if title, ok := titles[groupID]; ok && title != "" {
		return title
	}
	if firstSubject != "" {
		return firstSubject
	}
	return "Unknown"
}
