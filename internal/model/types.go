package model

// Trailer keys carried in commit messages. Keys are case-sensitive
// exact strings; the last occurrence wins on parse.
const (
	// TrailerCommitID is an 8-character lowercase hex string assigned
	// once per commit. It survives history rewrites that don't
	// explicitly change it and is the identity of a single-commit unit.
	TrailerCommitID = "Commit-Id"

	// TrailerGroup is an opaque identifier shared by every commit that
	// belongs to one group. Contiguity of commits sharing a value is
	// the structural invariant the validator checks.
	TrailerGroup = "Group"

	// TrailerGroupStart and TrailerGroupEnd are the marker-era trailers.
	// They are read only by the migration path, never written.
	TrailerGroupStart = "Group-Start"
	TrailerGroupEnd   = "Group-End"
)

// Commit is a read-only snapshot of one commit in the stack, oldest
// commits first in any sequence. The engine never mutates a Commit;
// rewrites happen by replaying commits with modified trailers, which
// produces new hashes.
type Commit struct {
	Hash     string            `json:"hash"`     // full hex object id
	Subject  string            `json:"subject"`  // first line of the message
	Body     string            `json:"body"`     // remainder of the message
	Message  string            `json:"message"`  // full raw message (subject + body)
	Trailers map[string]string `json:"trailers"` // parsed trailer block, keys unique
}

// CommitID returns the commit's Commit-Id trailer, or "" if unassigned.
func (c Commit) CommitID() string {
	return c.Trailers[TrailerCommitID]
}

// Group returns the commit's Group trailer, or "" if the commit is not
// part of a group.
func (c Commit) Group() string {
	return c.Trailers[TrailerGroup]
}

// DisplayID returns the commit's stable identity for display: its
// Commit-Id when assigned, else the short hash. The fallback exists for
// commits not yet stamped with an id; it is a display convenience, not
// a stable identity, and must never be persisted.
func (c Commit) DisplayID() string {
	if id := c.CommitID(); id != "" {
		return id
	}
	return ShortHash(c.Hash)
}

// ShortHash returns the first 8 hex characters of a commit hash.
func ShortHash(hash string) string {
	if len(hash) <= 8 {
		return hash
	}
	return hash[:8]
}

// UnitType distinguishes single-commit units from groups.
type UnitType string

const (
	UnitSingle UnitType = "single"
	UnitGroup  UnitType = "group"
)

// PRUnit is one independently reviewable unit of the stack: a single
// commit or a contiguous run of commits forming a named group.
//
// Commits, CommitIDs and Subjects are always the same length and
// co-indexed, oldest member first.
type PRUnit struct {
	Type UnitType `json:"type"`

	// ID is the commit's Commit-Id for singles (short-hash fallback for
	// commits without one) and the shared group identifier for groups.
	ID string `json:"id"`

	// Title is the display title when one is explicitly set. nil means
	// no stored title, which is distinct from an explicit empty title.
	Title *string `json:"title,omitempty"`

	CommitIDs []string `json:"commit_ids"`
	Commits   []string `json:"commits"` // full member hashes
	Subjects  []string `json:"subjects"`
}

// ContainsCommit reports whether the full hash is a member of the unit.
func (u PRUnit) ContainsCommit(hash string) bool {
	for _, h := range u.Commits {
		if h == hash {
			return true
		}
	}
	return false
}

// GroupTitles maps group identifiers to display titles. It is sourced
// from storage external to the commit sequence so a group's name
// survives even if trailers are stripped. A missing entry means "no
// stored title", distinct from an explicit empty title.
type GroupTitles map[string]string
