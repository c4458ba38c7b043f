package stack

import (
	"github.com/example/stackpr/internal/model"
)

// Detect folds the ordered commit sequence into PR units, oldest unit
// first. One linear pass with an open-group accumulator:
//
//   - a commit whose Group equals the open group's id joins it
//   - a commit with a different (or first) Group value closes any open
//     group and opens a new one seeded with this commit
//   - a commit without a Group value closes any open group and emits a
//     single unit
//
// Contiguity is enforced by construction here - the fold cannot produce
// a non-contiguous group. When history was rewritten so that a group's
// members are split, this fold silently treats the reused group id as
// two separate groups; Validate exists to catch exactly that before
// Detect runs.
func Detect(commits []model.Commit, titles model.GroupTitles) []model.PRUnit {
	var units []model.PRUnit
	var open *model.PRUnit

	flush := func() {
		if open != nil {
			units = append(units, *open)
			open = nil
		}
	}

	for _, c := range commits {
		groupID := c.Group()

		if groupID == "" {
			flush()
			units = append(units, model.PRUnit{
				Type:      model.UnitSingle,
				ID:        c.DisplayID(),
				CommitIDs: []string{c.DisplayID()},
				Commits:   []string{c.Hash},
				Subjects:  []string{c.Subject},
			})
			continue
		}

		if open != nil && open.ID == groupID {
			open.CommitIDs = append(open.CommitIDs, c.DisplayID())
			open.Commits = append(open.Commits, c.Hash)
			open.Subjects = append(open.Subjects, c.Subject)
			continue
		}

		flush()
		unit := model.PRUnit{
			Type:      model.UnitGroup,
			ID:        groupID,
			CommitIDs: []string{c.DisplayID()},
			Commits:   []string{c.Hash},
			Subjects:  []string{c.Subject},
		}
		if title, ok := titles[groupID]; ok {
			t := title
			unit.Title = &t
		}
		open = &unit
	}

	flush()
	return units
}
