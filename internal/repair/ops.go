package repair

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/stack"
)

// CreateGroup groups the commits named by identifiers under a freshly
// minted group id and stores name as its title. The resolved members
// must form one contiguous run in the stack; members that are already
// groups are absorbed into the new group.
//
// All identifier resolution errors are collected and reported together
// before any history is touched.
func (e *Engine) CreateGroup(ctx context.Context, identifiers []string, name string) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}

	units := stack.Detect(s.commits, s.titles)
	unitIDs, errs := stack.ResolveMany(identifiers, units, s.commits)
	if len(errs) > 0 {
		return failure(errors.Join(errs...))
	}
	if len(unitIDs) == 0 {
		return failure(fmt.Errorf("no commits to group"))
	}

	member := make(map[string]bool)
	absorbed := make(map[string]bool)
	for _, id := range unitIDs {
		for i := range units {
			if units[i].ID != id {
				continue
			}
			if units[i].Type == model.UnitGroup {
				absorbed[id] = true
			}
			for _, h := range units[i].Commits {
				member[h] = true
			}
		}
	}

	if err := contiguousRun(s.commits, member); err != nil {
		return failure(err)
	}

	groupID := e.newID()
	plan := make([]step, 0, len(s.commits))
	for _, c := range s.commits {
		st := step{commit: c}
		if member[c.Hash] {
			st.set = map[string]string{model.TrailerGroup: groupID}
		}
		plan = append(plan, st)
	}

	if result := e.run(ctx, s, plan); !result.Success {
		return result
	}

	for id := range absorbed {
		if err := e.titles.DeleteTitle(ctx, id); err != nil {
			return failure(err)
		}
	}
	if err := e.titles.SetTitle(ctx, groupID, name); err != nil {
		return failure(err)
	}

	result := success()
	result.GroupID = groupID
	return result
}

// ExtendGroup stamps one more commit into an existing group. The
// commit must sit immediately above or below the group in the stack so
// the result stays contiguous.
func (e *Engine) ExtendGroup(ctx context.Context, groupID, identifier string) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}

	units := stack.Detect(s.commits, s.titles)
	target, err := stack.Resolve(identifier, units, s.commits)
	if err != nil {
		return failure(err)
	}
	if target.Type != model.UnitSingle {
		return failure(fmt.Errorf("%q is already a group", identifier))
	}

	first, last := groupSpan(s.commits, groupID)
	if first < 0 {
		return failure(fmt.Errorf("no group %q in the stack", groupID))
	}

	idx := indexOfHash(s.commits, target.Commits[0])
	if idx != first-1 && idx != last+1 {
		return failure(fmt.Errorf("commit %s is not adjacent to group %q", model.ShortHash(target.Commits[0]), groupID))
	}

	plan := planOf(s.commits)
	plan[idx].set = map[string]string{model.TrailerGroup: groupID}
	return e.run(ctx, s, plan)
}

// DissolveGroup strips a group's trailers, converting its members back
// to singles, and deletes the stored title.
func (e *Engine) DissolveGroup(ctx context.Context, groupID string) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}

	plan := planOf(s.commits)
	found := false
	for i := range plan {
		if plan[i].commit.Group() == groupID {
			plan[i].remove = []string{model.TrailerGroup}
			found = true
		}
	}
	if !found {
		return failure(fmt.Errorf("no group %q in the stack", groupID))
	}

	if result := e.run(ctx, s, plan); !result.Success {
		return result
	}
	if err := e.titles.DeleteTitle(ctx, groupID); err != nil {
		return failure(err)
	}
	return success()
}

// MergeSplitGroup restores a split group to contiguity by pulling its
// members together at the position of the first member; the
// interrupting commits end up after the group, preserving their
// relative order. Running it on an already-contiguous group is a
// successful no-op, so a repair can be re-confirmed by re-running it.
func (e *Engine) MergeSplitGroup(ctx context.Context, groupID string) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}

	if result := stack.Validate(s.commits, s.titles); result.OK {
		if first, _ := groupSpan(s.commits, groupID); first < 0 {
			return failure(fmt.Errorf("no group %q in the stack", groupID))
		}
		return success()
	} else if result.Err.GroupID != groupID {
		// Groups are repaired one at a time, innermost violation first.
		return failure(result.Err)
	}

	var members []model.Commit
	for _, c := range s.commits {
		if c.Group() == groupID {
			members = append(members, c)
		}
	}

	plan := make([]step, 0, len(s.commits))
	emitted := false
	for _, c := range s.commits {
		if c.Group() == groupID {
			if !emitted {
				emitted = true
				for _, m := range members {
					plan = append(plan, step{commit: m})
				}
			}
			continue
		}
		plan = append(plan, step{commit: c})
	}

	return e.run(ctx, s, plan)
}

// RemoveAllGroups strips every Group trailer in the stack and clears
// the title store. The blunt full reset.
func (e *Engine) RemoveAllGroups(ctx context.Context) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}

	plan := planOf(s.commits)
	for i := range plan {
		if plan[i].commit.Group() != "" {
			plan[i].remove = []string{model.TrailerGroup}
		}
	}

	if result := e.run(ctx, s, plan); !result.Success {
		return result
	}
	if err := e.titles.DeleteAll(ctx); err != nil {
		return failure(err)
	}
	return success()
}

// SetGroupTitle stores a group's display title. A store write only, no
// history rewrite.
func (e *Engine) SetGroupTitle(ctx context.Context, groupID, title string) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}
	if first, _ := groupSpan(s.commits, groupID); first < 0 {
		return failure(fmt.Errorf("no group %q in the stack", groupID))
	}
	if err := e.titles.SetTitle(ctx, groupID, title); err != nil {
		return failure(err)
	}
	return success()
}

// EnsureCommitIDs assigns a fresh Commit-Id to every commit lacking
// one, leaving stamped commits untouched.
func (e *Engine) EnsureCommitIDs(ctx context.Context) Result {
	s, err := e.load(ctx)
	if err != nil {
		return failure(err)
	}

	plan := planOf(s.commits)
	for i := range plan {
		if plan[i].commit.CommitID() == "" {
			plan[i].set = map[string]string{model.TrailerCommitID: e.newID()}
		}
	}
	return e.run(ctx, s, plan)
}

// contiguousRun verifies that the member hashes occupy one unbroken
// index range of the sequence.
func contiguousRun(commits []model.Commit, member map[string]bool) error {
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
			return fmt.Errorf("commits do not form a contiguous run: %s is in the middle but not selected",
				model.ShortHash(commits[i].Hash))
		}
	}
	return nil
}

// groupSpan returns the first and last index of a group's members, or
// (-1, -1) when the group has none.
func groupSpan(commits []model.Commit, groupID string) (int, int) {
	first, last := -1, -1
	for i, c := range commits {
		if c.Group() == groupID {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last
}

func indexOfHash(commits []model.Commit, hash string) int {
	for i, c := range commits {
		if c.Hash == hash {
			return i
		}
	}
	return -1
}
