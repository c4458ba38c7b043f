package repair

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/specfile"
	"github.com/example/stackpr/internal/stack"
)

// Apply rewrites the stack to match a declarative spec in one pass: an
// optional explicit new unit order plus the set of groups the stack
// should end up with. Commits in no group definition lose any Group
// trailer they carry; titles for groups that no longer exist are
// dropped from the store.
//
// Every identifier in the spec is resolved through the identifier
// resolver first, and all resolution errors are reported together
// before any mutation is attempted. When the spec names an explicit
// order it must list every unit exactly once.
func (e *Engine) Apply(ctx context.Context, spec *specfile.Spec) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}

	units := stack.Detect(s.commits, s.titles)

	// Resolve everything up front, collecting every failure.
	var errs []error
	orderUnits := make([]*model.PRUnit, 0, len(spec.Order))
	for _, identifier := range spec.Order {
		unit, err := stack.Resolve(identifier, units, s.commits)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		orderUnits = append(orderUnits, unit)
	}

	groupMembers := make([][]string, len(spec.Groups)) // member hashes per definition
	memberOf := make(map[string]int)                   // hash -> definition index
	for gi, def := range spec.Groups {
		for _, identifier := range def.Commits {
			unit, err := stack.Resolve(identifier, units, s.commits)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for _, h := range unitCommits(units, unit.ID) {
				if prev, dup := memberOf[h]; dup && prev != gi {
					errs = append(errs, fmt.Errorf("commit %s appears in groups %q and %q",
						model.ShortHash(h), spec.Groups[prev].Name, def.Name))
					continue
				}
				if _, dup := memberOf[h]; !dup {
					memberOf[h] = gi
					groupMembers[gi] = append(groupMembers[gi], h)
				}
			}
		}
	}
	if len(errs) > 0 {
		return failure(errors.Join(errs...))
	}

	ordered, err := orderedCommits(s, units, orderUnits, len(spec.Order) > 0)
	if err != nil {
		return failure(err)
	}

	// Group members must be contiguous in the new order.
	for gi, def := range spec.Groups {
		member := make(map[string]bool, len(groupMembers[gi]))
		for _, h := range groupMembers[gi] {
			member[h] = true
		}
		if err := contiguousRunIn(ordered, member, def.Name); err != nil {
			return failure(err)
		}
	}

	groupIDs := e.assignGroupIDs(s, spec, groupMembers)

	plan := make([]step, 0, len(ordered))
	for _, c := range ordered {
		st := step{commit: c}
		if gi, ok := memberOf[c.Hash]; ok {
			if c.Group() != groupIDs[gi] {
				st.set = map[string]string{model.TrailerGroup: groupIDs[gi]}
			}
		} else if c.Group() != "" {
			st.remove = []string{model.TrailerGroup}
		}
		plan = append(plan, st)
	}

	if result := e.run(ctx, s, plan); !result.Success {
		return result
	}

	return e.reconcileTitles(ctx, s, spec, groupIDs)
}

// orderedCommits expands the resolved unit order into a commit order,
// verifying that an explicit order covers every unit exactly once.
// Without an explicit order the current sequence is kept.
//
// A split group appears in the detector's output as several fragments
// sharing one unit id; they count as one logical unit here, so a spec
// can state the desired order for a stack the validator rejects and
// double as the repair.
func orderedCommits(s *state, units []model.PRUnit, orderUnits []*model.PRUnit, explicit bool) ([]model.Commit, error) {
	if !explicit {
		return s.commits, nil
	}

	seen := make(map[string]bool)
	var ordered []model.Commit
	byHash := make(map[string]model.Commit, len(s.commits))
	for _, c := range s.commits {
		byHash[c.Hash] = c
	}

	for _, unit := range orderUnits {
		if seen[unit.ID] {
			return nil, fmt.Errorf("order lists unit %q twice", unit.ID)
		}
		seen[unit.ID] = true
		for _, h := range unitCommits(units, unit.ID) {
			ordered = append(ordered, byHash[h])
		}
	}

	for _, unit := range units {
		if !seen[unit.ID] {
			return nil, fmt.Errorf("order omits unit %q", unit.ID)
		}
	}
	return ordered, nil
}

// unitCommits gathers the member hashes of every unit carrying the
// given id, in stack order. For a well-formed stack that is one unit;
// for a split group it is all of its fragments.
func unitCommits(units []model.PRUnit, id string) []string {
	var hashes []string
	for i := range units {
		if units[i].ID == id {
			hashes = append(hashes, units[i].Commits...)
		}
	}
	return hashes
}

// assignGroupIDs reuses an existing group id when a definition's
// members already all carry the same one, so re-applying a spec is
// stable; otherwise it mints a fresh id.
func (e *Engine) assignGroupIDs(s *state, spec *specfile.Spec, groupMembers [][]string) []string {
	current := make(map[string]string, len(s.commits))
	for _, c := range s.commits {
		current[c.Hash] = c.Group()
	}

	ids := make([]string, len(spec.Groups))
	for gi := range spec.Groups {
		shared := ""
		for i, h := range groupMembers[gi] {
			g := current[h]
			if i == 0 {
				shared = g
			} else if g != shared {
				shared = ""
				break
			}
		}
		if shared != "" {
			ids[gi] = shared
		} else {
			ids[gi] = e.newID()
		}
	}
	return ids
}

// reconcileTitles writes the spec's group names and drops titles of
// groups the rewrite removed.
func (e *Engine) reconcileTitles(ctx context.Context, s *state, spec *specfile.Spec, groupIDs []string) Result {
	before := make(map[string]bool)
	for _, c := range s.commits {
		if g := c.Group(); g != "" {
			before[g] = true
		}
	}

	for gi, def := range spec.Groups {
		if err := e.titles.SetTitle(ctx, groupIDs[gi], def.Name); err != nil {
			return failure(err)
		}
	}

	kept := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		kept[id] = true
	}
	for old := range before {
		if !kept[old] {
			if err := e.titles.DeleteTitle(ctx, old); err != nil {
				return failure(err)
			}
		}
	}
	return success()
}

// contiguousRunIn is contiguousRun over an arbitrary order, naming the
// offending group in the error.
func contiguousRunIn(commits []model.Commit, member map[string]bool, name string) error {
	first, last := -1, -1
	for i, c := range commits {
		if !member[c.Hash] {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	for i := first; i >= 0 && i <= last; i++ {
		if !member[commits[i].Hash] {
			return fmt.Errorf("group %q is not contiguous in the requested order: %s interrupts it",
				name, model.ShortHash(commits[i].Hash))
		}
	}
	return nil
}
