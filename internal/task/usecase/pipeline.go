package usecase

import (
	"sort"
	"time"

	"dida-sync/internal/model"
)

// resolveStartDate picks the lower recency bound for a run: the explicit
// criteria value when given, otherwise now minus the configured window.
// The same value bounds the completed fetch and the open-item admission.
func (uc *implUseCase) resolveStartDate(c model.Criteria, now time.Time) time.Time {
	if c.StartDate != nil {
		return *c.StartDate
	}
	return now.AddDate(0, 0, -uc.windowDays)
}

// mergeAndFilter runs the fixed-order filter pipeline over the two fetched
// item sets and returns the ordered result. Pure: no I/O, no errors.
//
// Order matters: recency admission applies to open items only (the completed
// set was already bounded server-side), exclusion tags are evaluated before
// inclusion tags and win.
func mergeAndFilter(open, completed []model.Task, c model.Criteria, startDate time.Time) []model.Task {
	merged := make([]model.Task, 0, len(open)+len(completed))
	for _, t := range open {
		if admittedByRecency(t, startDate) {
			merged = append(merged, t)
		}
	}
	merged = append(merged, completed...)

	out := merged[:0]
	for _, t := range merged {
		if t.Status == model.StatusAbandoned {
			continue
		}
		if c.ProjectID != "" && t.ProjectID != c.ProjectID {
			continue
		}
		if c.Status != nil && t.Status != *c.Status {
			continue
		}
		if !admittedByTags(t, c) {
			continue
		}
		if c.TaskID != "" && t.ID != c.TaskID {
			continue
		}
		out = append(out, t)
	}

	// Stable: ties on createdTime keep merge order (open before completed).
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedTime.After(out[j].CreatedTime)
	})
	return out
}

// admittedByRecency keeps an open item when either its creation or its due
// date falls strictly after the start date.
func admittedByRecency(t model.Task, startDate time.Time) bool {
	if t.CreatedTime.After(startDate) {
		return true
	}
	return t.DueDate != nil && t.DueDate.After(startDate)
}

// admittedByTags applies the exclusion set first; any hit drops the item
// regardless of the inclusion set. A non-empty inclusion set then requires at
// least one shared tag, which drops tagless items.
func admittedByTags(t model.Task, c model.Criteria) bool {
	if t.HasAnyTag(c.ExcludeTags) {
		return false
	}
	if len(c.Tags) > 0 {
		return t.HasAnyTag(c.Tags)
	}
	return true
}
