// Package overlap flags time entries that start before the previous entry of
// the same owner and day has ended.
package overlap

import (
	"sort"
	"time"

	"github.com/Tiliavir/timesheet-validator/internal/model"
	"github.com/Tiliavir/timesheet-validator/internal/timecalc"
)

type partitionKey struct {
	owner string
	day   time.Time
}

// Annotate returns a copy of entries with Overlap set. Entries are grouped by
// (owner, day) and ordered by start time at minute granularity; an entry is
// flagged when its start is strictly before the end of the entry right before
// it in that order. Only the immediate predecessor is compared, so an entry
// overlapping an earlier, longer entry but not its direct predecessor is not
// flagged. The first entry of a group is never flagged.
func Annotate(entries []model.TimeEntry) []model.TimeEntry {
	out := make([]model.TimeEntry, len(entries))
	copy(out, entries)

	groups := make(map[partitionKey][]int)
	for i, e := range out {
		out[i].Overlap = false
		k := partitionKey{owner: e.Owner, day: e.Day}
		groups[k] = append(groups[k], i)
	}

	for _, idx := range groups {
		sort.SliceStable(idx, func(a, b int) bool {
			return timecalc.FloorMinute(out[idx[a]].Start).Before(timecalc.FloorMinute(out[idx[b]].Start))
		})
		for j := 1; j < len(idx); j++ {
			cur, prev := out[idx[j]], out[idx[j-1]]
			if timecalc.FloorMinute(cur.Start).Before(timecalc.FloorMinute(prev.End)) {
				out[idx[j]].Overlap = true
			}
		}
	}
	return out
}

// Days returns the days on which at least one in-scope entry is flagged.
func Days(entries []model.TimeEntry, scope model.Scope) map[time.Time]bool {
	days := make(map[time.Time]bool)
	for _, e := range entries {
		if e.Overlap && scope.Includes(e) {
			days[e.Day] = true
		}
	}
	return days
}
