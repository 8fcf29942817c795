// Package reconciler merges the blocks of one listing into a conflict-free view.
package reconciler

import (
	"slices"
	"staysync/internal/domains/availability/model"
	"staysync/shared/daterange"
)

// Conflict is an overlap between two confirmed blocks, resolved in favour of Winner.
type Conflict struct {
	Winner  model.Block     `json:"winner"`
	Loser   model.Block     `json:"loser"`
	Overlap daterange.Range `json:"overlap"`
	// SameSource is set when both blocks come from one source, e.g. a channel
	// listing two overlapping reservations.
	SameSource bool `json:"same_source"`
}

type Result struct {
	// Blocks is the input with the Authoritative flag recomputed.
	Blocks    []model.Block
	Demoted   []string
	Conflicts []Conflict
}

// CrossSourceConflicts counts conflicts between different sources.
func (r Result) CrossSourceConflicts() int {
	count := 0

	for _, conflict := range r.Conflicts {
		if !conflict.SameSource {
			count++
		}
	}

	return count
}

// Reconcile sweeps confirmed blocks in start order and, on every overlap, keeps
// the block with the higher precedence. Tentative and blocked entries are always
// authoritative. The outcome does not depend on input order.
func Reconcile(blocks []model.Block) Result {
	result := Result{Blocks: make([]model.Block, len(blocks))}

	confirmed := []int{}

	for i, block := range blocks {
		block.Authoritative = true
		result.Blocks[i] = block

		if block.IsConfirmed() {
			confirmed = append(confirmed, i)
		}
	}

	slices.SortFunc(confirmed, func(a, b int) int {
		if c := result.Blocks[a].DateRangeStart.Compare(result.Blocks[b].DateRangeStart); c != 0 {
			return c
		}

		return model.ComparePrecedence(result.Blocks[a], result.Blocks[b])
	})

	active := []int{}

	for _, idx := range confirmed {
		current := result.Blocks[idx]

		// Accepted blocks that ended before this one starts can no longer overlap anything.
		active = slices.DeleteFunc(active, func(a int) bool {
			return !result.Blocks[a].DateRangeEnd.After(current.DateRangeStart)
		})

		winner := -1
		for _, a := range active {
			if model.ComparePrecedence(result.Blocks[a], current) < 0 {
				winner = a

				break
			}
		}

		if winner >= 0 {
			result.demote(idx, winner)

			continue
		}

		for _, a := range active {
			result.demote(a, idx)
		}

		active = []int{idx}
	}

	for _, idx := range confirmed {
		if !result.Blocks[idx].Authoritative {
			result.Demoted = append(result.Demoted, result.Blocks[idx].ID)
		}
	}

	return result
}

func (r *Result) demote(loser, winner int) {
	r.Blocks[loser].Authoritative = false

	overlap, _ := r.Blocks[loser].Range().Intersect(r.Blocks[winner].Range())

	r.Conflicts = append(r.Conflicts, Conflict{
		Winner:     r.Blocks[winner],
		Loser:      r.Blocks[loser],
		Overlap:    overlap,
		SameSource: r.Blocks[loser].Source == r.Blocks[winner].Source,
	})
}

// Authoritative returns the blocks that survive reconciliation.
func (r Result) Authoritative() []model.Block {
	out := make([]model.Block, 0, len(r.Blocks))

	for _, block := range r.Blocks {
		if block.Authoritative {
			out = append(out, block)
		}
	}

	return out
}
