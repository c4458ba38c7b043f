package stack

import (
	"strings"

	"github.com/example/stackpr/internal/model"
)

// Resolve maps a user-supplied identifier to exactly one PR unit.
//
// Resolution order, each step short-circuiting on any match:
//
//  1. exact equality against a unit id
//  2. prefix match against unit ids - exactly one wins, more than one
//     is ambiguous
//  3. prefix match against full commit hashes - exactly one wins and
//     resolves to whichever unit contains that commit (a group member
//     resolves to its group, not a synthetic single); more than one is
//     ambiguous, listed in short form
//
// Unit ids come first because they are the stable, short, human-typed
// addressing scheme; raw hashes are the git-native fallback. Exact
// match before prefix match keeps a short full id from being shadowed
// by a coincidental longer prefix match.
//
// Resolve is a function of its three inputs only: same inputs, same
// resolution.
func Resolve(identifier string, units []model.PRUnit, commits []model.Commit) (*model.PRUnit, error) {
	for i := range units {
		if units[i].ID == identifier {
			return &units[i], nil
		}
	}

	var unitMatches []int
	for i := range units {
		if strings.HasPrefix(units[i].ID, identifier) {
			unitMatches = append(unitMatches, i)
		}
	}
	if len(unitMatches) == 1 {
		return &units[unitMatches[0]], nil
	}
	if len(unitMatches) > 1 {
		matches := make([]string, 0, len(unitMatches))
		for _, i := range unitMatches {
			matches = append(matches, units[i].ID)
		}
		return nil, &AmbiguousError{Identifier: identifier, Matches: matches}
	}

	var hashMatches []string
	for _, c := range commits {
		if strings.HasPrefix(c.Hash, identifier) {
			hashMatches = append(hashMatches, c.Hash)
		}
	}
	if len(hashMatches) == 1 {
		for i := range units {
			if units[i].ContainsCommit(hashMatches[0]) {
				return &units[i], nil
			}
		}
		return nil, &NotFoundError{Identifier: identifier}
	}
	if len(hashMatches) > 1 {
		matches := make([]string, 0, len(hashMatches))
		for _, h := range hashMatches {
			matches = append(matches, model.ShortHash(h))
		}
		return nil, &AmbiguousError{Identifier: identifier, Matches: matches}
	}

	return nil, &NotFoundError{Identifier: identifier}
}

// ResolveMany resolves each identifier independently and deduplicates
// the results into an ordered set of unit ids. A batch never aborts on
// the first unresolved identifier: every resolution and every error is
// collected so the caller can report all problems in the input at once.
func ResolveMany(identifiers []string, units []model.PRUnit, commits []model.Commit) ([]string, []error) {
	var ids []string
	var errs []error
	seen := make(map[string]bool)

	for _, identifier := range identifiers {
		unit, err := Resolve(identifier, units, commits)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !seen[unit.ID] {
			seen[unit.ID] = true
			ids = append(ids, unit.ID)
		}
	}
	return ids, errs
}

// ResolveUpTo resolves identifier and returns the unit ids from the
// bottom of the stack through and including the target, in stack
// order. Used to implement "select this commit and everything below
// it".
func ResolveUpTo(identifier string, units []model.PRUnit, commits []model.Commit) ([]string, error) {
	target, err := Resolve(identifier, units, commits)
	if err != nil {
		return nil, err
	}

	var ids []string
	for i := range units {
		ids = append(ids, units[i].ID)
		if units[i].ID == target.ID {
			return ids, nil
		}
	}
	// Resolve only returns units from the slice, so the target is
	// always found above.
	return ids, nil
}
