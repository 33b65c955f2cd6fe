package usecase

import (
	"testing"
	"time"

	"dida-sync/internal/model"
)

var pipelineNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func openTask(id string, createdDaysAgo int, tags ...string) model.Task {
	return model.Task{
		ID:          id,
		ProjectID:   "proj-1",
		Title:       id,
		Status:      model.StatusUnCompleted,
		Tags:        tags,
		CreatedTime: pipelineNow.AddDate(0, 0, -createdDaysAgo),
	}
}

func completedTask(id string, createdDaysAgo int, tags ...string) model.Task {
	t := openTask(id, createdDaysAgo, tags...)
	t.Status = model.StatusCompleted
	return t
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMergeAndFilter(t *testing.T) {
	startDate := pipelineNow.AddDate(0, 0, -180)

	t.Run("Abandoned Never Surfaces", func(t *testing.T) {
		open := []model.Task{openTask("keep", 1)}
		open = append(open, model.Task{ID: "dropped", Status: model.StatusAbandoned, CreatedTime: pipelineNow})
		completed := []model.Task{completedTask("done", 2)}

		got := mergeAndFilter(open, completed, model.Criteria{Service: model.ServiceDida}, startDate)
		for _, task := range got {
			if task.Status == model.StatusAbandoned {
				t.Fatalf("abandoned task surfaced: %+v", task)
			}
		}
		if !equalIDs(ids(got), []string{"keep", "done"}) {
			t.Errorf("unexpected result: %v", ids(got))
		}
	})

	t.Run("Ordered By CreatedTime Descending", func(t *testing.T) {
		open := []model.Task{openTask("old", 30), openTask("new", 1)}
		completed := []model.Task{completedTask("mid", 10)}

		got := mergeAndFilter(open, completed, model.Criteria{}, startDate)
		for i := 1; i < len(got); i++ {
			if got[i].CreatedTime.After(got[i-1].CreatedTime) {
				t.Fatalf("output increases at %d: %v", i, ids(got))
			}
		}
		if !equalIDs(ids(got), []string{"new", "mid", "old"}) {
			t.Errorf("unexpected order: %v", ids(got))
		}
	})

	t.Run("Ties Keep Merge Order", func(t *testing.T) {
		open := []model.Task{openTask("open-tie", 5)}
		completed := []model.Task{completedTask("done-tie", 5)}

		got := mergeAndFilter(open, completed, model.Criteria{}, startDate)
		if !equalIDs(ids(got), []string{"open-tie", "done-tie"}) {
			t.Errorf("tie did not keep merge order: %v", ids(got))
		}
	})

	t.Run("Recency Admits Open Items Only", func(t *testing.T) {
		stale := openTask("stale", 200)
		fresh := openTask("fresh", 10)
		// Completed items were bounded server-side; the pipeline never
		// re-checks them.
		oldDone := completedTask("old-done", 200)

		got := mergeAndFilter([]model.Task{stale, fresh}, []model.Task{oldDone}, model.Criteria{}, startDate)
		if !equalIDs(ids(got), []string{"fresh", "old-done"}) {
			t.Errorf("unexpected admission: %v", ids(got))
		}
	})

	t.Run("StartDate Boundary Is Strict", func(t *testing.T) {
		onBoundary := openTask("boundary", 0)
		onBoundary.CreatedTime = startDate
		after := openTask("after", 0)
		after.CreatedTime = startDate.Add(time.Second)

		got := mergeAndFilter([]model.Task{onBoundary, after}, nil, model.Criteria{}, startDate)
		if !equalIDs(ids(got), []string{"after"}) {
			t.Errorf("boundary admission wrong: %v", ids(got))
		}
	})

	t.Run("DueDate Rescues Stale Open Item", func(t *testing.T) {
		stale := openTask("stale-due", 300)
		due := pipelineNow.AddDate(0, 0, 7)
		stale.DueDate = &due

		got := mergeAndFilter([]model.Task{stale}, nil, model.Criteria{}, startDate)
		if !equalIDs(ids(got), []string{"stale-due"}) {
			t.Errorf("due date did not admit: %v", ids(got))
		}
	})

	t.Run("Exclude Beats Include", func(t *testing.T) {
		both := openTask("both", 1, "work", "private")
		workOnly := openTask("work-only", 2, "work")

		c := model.Criteria{Tags: []string{"work"}, ExcludeTags: []string{"private"}}
		got := mergeAndFilter([]model.Task{both, workOnly}, nil, c, startDate)
		if !equalIDs(ids(got), []string{"work-only"}) {
			t.Errorf("exclusion did not win: %v", ids(got))
		}
	})

	t.Run("Inclusion Drops Tagless Items", func(t *testing.T) {
		tagless := openTask("tagless", 1)
		tagged := openTask("tagged", 2, "work")

		got := mergeAndFilter([]model.Task{tagless, tagged}, nil, model.Criteria{Tags: []string{"work"}}, startDate)
		if !equalIDs(ids(got), []string{"tagged"}) {
			t.Errorf("tagless item survived inclusion: %v", ids(got))
		}
	})

	t.Run("Project Filter", func(t *testing.T) {
		other := openTask("other", 1)
		other.ProjectID = "proj-2"

		got := mergeAndFilter([]model.Task{openTask("mine", 2), other}, nil, model.Criteria{ProjectID: "proj-1"}, startDate)
		if !equalIDs(ids(got), []string{"mine"}) {
			t.Errorf("project filter wrong: %v", ids(got))
		}
	})

	t.Run("Status Filter", func(t *testing.T) {
		status := model.StatusCompleted
		got := mergeAndFilter(
			[]model.Task{openTask("open", 1)},
			[]model.Task{completedTask("done", 2)},
			model.Criteria{Status: &status},
			startDate,
		)
		if !equalIDs(ids(got), []string{"done"}) {
			t.Errorf("status filter wrong: %v", ids(got))
		}
	})

	t.Run("TaskID Reduces To One", func(t *testing.T) {
		got := mergeAndFilter(
			[]model.Task{openTask("a", 1), openTask("b", 2)},
			[]model.Task{completedTask("c", 3)},
			model.Criteria{TaskID: "b"},
			startDate,
		)
		if !equalIDs(ids(got), []string{"b"}) {
			t.Errorf("taskId filter wrong: %v", ids(got))
		}
	})

	t.Run("Empty Inputs", func(t *testing.T) {
		if got := mergeAndFilter(nil, nil, model.Criteria{}, startDate); len(got) != 0 {
			t.Errorf("expected empty result, got %v", ids(got))
		}
	})
}

func TestResolveStartDate(t *testing.T) {
	uc := &implUseCase{windowDays: 180}

	t.Run("Explicit", func(t *testing.T) {
		explicit := pipelineNow.AddDate(0, 0, -7)
		got := uc.resolveStartDate(model.Criteria{StartDate: &explicit}, pipelineNow)
		if !got.Equal(explicit) {
			t.Errorf("expected %v, got %v", explicit, got)
		}
	})

	t.Run("Window Default", func(t *testing.T) {
		got := uc.resolveStartDate(model.Criteria{}, pipelineNow)
		if want := pipelineNow.AddDate(0, 0, -180); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
