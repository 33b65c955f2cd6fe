// Package markdown renders pipeline tasks into markdown document fragments.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"dida-sync/internal/model"
	"dida-sync/internal/task"
)

const (
	// anchorPrefix keys the block anchor under each task heading. Anchors are
	// `^dida-<taskId>` and must stay stable across re-syncs so external
	// back-references keep resolving.
	anchorPrefix = "dida"

	timeFormat = "2006-01-02 15:04:05"
)

// Renderer converts tasks plus their resolved attachments into markdown.
type Renderer struct{}

// NewRenderer creates a task markdown renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderTask renders one task as a markdown block: heading with stable
// anchor, collapsible metadata callout, rewritten body, checkbox sub-items.
func (r *Renderer) RenderTask(t model.Task, atts []model.ResolvedAttachment) (string, error) {
	body, err := rewriteBody(t.Content, atts)
	if err != nil {
		return "", fmt.Errorf("task %s: %v: %w", t.ID, err, task.ErrRender)
	}

	var sb strings.Builder
	sb.WriteString("# " + t.Title + "\n")
	sb.WriteString("^" + anchorPrefix + "-" + t.ID + "\n")
	sb.WriteString("\n")

	sb.WriteString("> [!meta]-\n")
	sb.WriteString("> - createdTime: " + formatTime(t.CreatedTime) + "\n")
	if t.DueDate != nil {
		sb.WriteString("> - dueDate: " + formatTime(*t.DueDate) + "\n")
	}
	sb.WriteString("> - status: " + t.Status.String() + "\n")

	if body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}

	if len(t.Items) > 0 {
		sb.WriteString("\n")
		for _, item := range t.Items {
			mark := " "
			if item.Status == model.StatusCompleted {
				mark = "X"
			}
			sb.WriteString("- [" + mark + "] " + item.Title + "\n")
		}
	}

	return sb.String(), nil
}

// RenderTasks renders every task in pipeline order, blocks separated by a
// blank line.
func (r *Renderer) RenderTasks(tasks []model.Task, resolved map[string][]model.ResolvedAttachment) (string, error) {
	if len(tasks) == 0 {
		return "", nil
	}

	blocks := make([]string, 0, len(tasks))
	for _, t := range tasks {
		block, err := r.RenderTask(t, resolved[t.ID])
		if err != nil {
			return "", err
		}
		blocks = append(blocks, strings.TrimRight(block, "\n"))
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFormat)
}
