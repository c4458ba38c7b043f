package stack

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes structural validation failures.
type ErrorCode string

const (
	// ErrCodeSplitGroup indicates a group whose members are no longer
	// contiguous in the stack, typically after an intervening rebase or
	// cherry-pick moved a foreign commit into the middle of the group.
	ErrCodeSplitGroup ErrorCode = "SPLIT_GROUP"
)

// ValidationError describes one structural invariant violation with
// enough context to drive a repair UI without re-scanning history.
type ValidationError struct {
	// Code identifies the violation kind.
	Code ErrorCode `json:"code"`

	// GroupID is the offending group's identifier.
	GroupID string `json:"group_id"`

	// GroupTitle is the group's resolved display title: the stored
	// title when present, else the subject of the group's first
	// recorded member, else "Unknown".
	GroupTitle string `json:"group_title"`

	// GroupCommits lists every member commit hash of the group, in
	// stack order (the union of all recorded ranges).
	GroupCommits []string `json:"group_commits"`

	// InterruptingCommits lists the commit hashes that fall strictly
	// between the group's first two non-adjacent positions. Several
	// unrelated commits may have been rebased into the middle of the
	// group, so this can hold more than one hash.
	InterruptingCommits []string `json:"interrupting_commits"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: group %q (%s) is interrupted by %d commit(s)",
		e.Code, e.GroupID, e.GroupTitle, len(e.InterruptingCommits))
}

// IsSplitGroup reports whether err is a split-group validation error.
// Uses errors.As to handle wrapped errors.
func IsSplitGroup(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code == ErrCodeSplitGroup
	}
	return false
}

// NotFoundError reports an identifier that matched no unit id and no
// commit hash.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no unit or commit matches %q", e.Identifier)
}

// AmbiguousError reports an identifier that prefix-matched more than
// one unit id or commit hash. Matches lists every candidate in stack
// order so the caller can present them all.
type AmbiguousError struct {
	Identifier string
	Matches    []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q is ambiguous: matches %s", e.Identifier, strings.Join(e.Matches, ", "))
}

// IsNotFound reports whether err is a not-found resolution error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAmbiguous reports whether err is an ambiguous resolution error.
func IsAmbiguous(err error) bool {
	var ae *AmbiguousError
	return errors.As(err, &ae)
}
