package markdown_test

import (
	"strings"
	"testing"
	"time"

	"dida-sync/internal/markdown"
	"dida-sync/internal/model"
)

func testTask() model.Task {
	created := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	return model.Task{
		ID:          "task-1",
		ProjectID:   "proj-1",
		Title:       "Write report",
		Status:      model.StatusUnCompleted,
		CreatedTime: created,
	}
}

func TestRenderTask(t *testing.T) {
	r := markdown.NewRenderer()

	t.Run("Heading And Anchor", func(t *testing.T) {
		out, err := r.RenderTask(testTask(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(out, "\n")
		if lines[0] != "# Write report" {
			t.Errorf("unexpected heading line: %q", lines[0])
		}
		if lines[1] != "^dida-task-1" {
			t.Errorf("unexpected anchor line: %q", lines[1])
		}
	})

	t.Run("Meta Callout", func(t *testing.T) {
		task := testTask()
		due := time.Date(2024, 1, 20, 17, 0, 0, 0, time.UTC)
		task.DueDate = &due
		task.Status = model.StatusCompleted

		out, err := r.RenderTask(task, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"> [!meta]-",
			"> - createdTime: 2024-01-10 08:30:00",
			"> - dueDate: 2024-01-20 17:00:00",
			"> - status: Completed",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in:\n%s", want, out)
			}
		}
	})

	t.Run("No DueDate Line When Absent", func(t *testing.T) {
		out, err := r.RenderTask(testTask(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out, "dueDate") {
			t.Errorf("dueDate line should be omitted:\n%s", out)
		}
	})

	t.Run("Body Headings Promoted", func(t *testing.T) {
		task := testTask()
		task.Content = "# Notes\n\nsome text\n\n## Details\n\nmore"

		out, err := r.RenderTask(task, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "## Notes") {
			t.Errorf("h1 not promoted to h2:\n%s", out)
		}
		if !strings.Contains(out, "### Details") {
			t.Errorf("h2 not promoted to h3:\n%s", out)
		}
		// The task title itself must remain the only h1.
		if strings.Count(out, "\n# ") != 0 {
			t.Errorf("body kept an h1:\n%s", out)
		}
	})

	t.Run("Sub Items As Checkboxes", func(t *testing.T) {
		task := testTask()
		task.Items = []model.SubItem{
			{Title: "draft", Status: model.StatusCompleted},
			{Title: "review", Status: model.StatusUnCompleted},
		}

		out, err := r.RenderTask(task, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "- [X] draft") {
			t.Errorf("completed sub-item not checked:\n%s", out)
		}
		if !strings.Contains(out, "- [ ] review") {
			t.Errorf("open sub-item should be unchecked:\n%s", out)
		}
		// Source order preserved.
		if strings.Index(out, "draft") > strings.Index(out, "review") {
			t.Errorf("sub-item order not preserved:\n%s", out)
		}
	})
}

func TestRenderTaskAttachmentRelink(t *testing.T) {
	r := markdown.NewRenderer()
	resolved := []model.ResolvedAttachment{
		{ID: "att-1", Name: "chart.png", Path: "attachments/att-1.png"},
	}

	t.Run("Image URL Rewritten Exactly Once", func(t *testing.T) {
		task := testTask()
		task.Content = "before\n\n![chart](att-1/chart.png)\n\nafter"

		out, err := r.RenderTask(task, resolved)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Count(out, "attachments/att-1.png"); got != 1 {
			t.Errorf("expected exactly one rewritten URL, got %d:\n%s", got, out)
		}
		if strings.Contains(out, "att-1/chart.png") {
			t.Errorf("original remote-relative URL survived:\n%s", out)
		}
		// Surrounding nodes untouched.
		if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
			t.Errorf("sibling paragraphs were altered:\n%s", out)
		}
	})

	t.Run("File Embed Becomes Plain Link", func(t *testing.T) {
		task := testTask()
		task.Content = "![file](att-1/report.pdf)"

		out, err := r.RenderTask(task, resolved)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "[chart.png](attachments/att-1.png)") {
			t.Errorf("file embed not rewritten to a link:\n%s", out)
		}
		if strings.Contains(out, "![") {
			t.Errorf("embed marker survived the rewrite:\n%s", out)
		}
	})

	t.Run("Reference After File Embed Also Rewritten", func(t *testing.T) {
		task := testTask()
		task.Content = "![file](att-1/report.pdf) and ![chart](att-2/chart.png)"
		both := []model.ResolvedAttachment{
			{ID: "att-1", Name: "report.pdf", Path: "attachments/att-1.pdf"},
			{ID: "att-2", Name: "chart.png", Path: "attachments/att-2.png"},
		}

		out, err := r.RenderTask(task, both)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "[report.pdf](attachments/att-1.pdf)") {
			t.Errorf("file embed not rewritten:\n%s", out)
		}
		if !strings.Contains(out, "![chart](attachments/att-2.png)") {
			t.Errorf("sibling image after the embed kept its remote URL:\n%s", out)
		}
		if strings.Contains(out, "att-2/chart.png") {
			t.Errorf("remote-relative URL survived:\n%s", out)
		}
	})

	t.Run("Unknown Reference Left Alone", func(t *testing.T) {
		task := testTask()
		task.Content = "![pic](other-id/pic.png)"

		out, err := r.RenderTask(task, resolved)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "other-id/pic.png") {
			t.Errorf("unrelated reference was rewritten:\n%s", out)
		}
	})
}

func TestRenderTasks(t *testing.T) {
	r := markdown.NewRenderer()

	a := testTask()
	a.ID = "A"
	a.Title = "First"
	b := testTask()
	b.ID = "B"
	b.Title = "Second"

	out, err := r.RenderTasks([]model.Task{a, b}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := strings.Index(out, "# First")
	second := strings.Index(out, "# Second")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("blocks missing or out of order:\n%s", out)
	}
	if !strings.Contains(out, "\n\n# Second") {
		t.Errorf("blocks not separated by a blank line:\n%s", out)
	}

	t.Run("Empty Input", func(t *testing.T) {
		out, err := r.RenderTasks(nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("expected empty output, got %q", out)
		}
	})
}
