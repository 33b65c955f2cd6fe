package dida

import (
	"context"
	"fmt"
	"time"

	"dida-sync/internal/model"
	"dida-sync/internal/task/repository"
	pkgLog "dida-sync/pkg/log"
)

type implSource struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a repository.Source backed by one deployment of the todo
// service.
func New(client *Client, l pkgLog.Logger) repository.Source {
	return &implSource{
		client: client,
		l:      l,
	}
}

func (r *implSource) FetchOpenItems(ctx context.Context) ([]model.Task, error) {
	items, err := r.client.OpenItems(ctx)
	if err != nil {
		r.l.Errorf(ctx, "dida repository: failed to fetch open items: %v", err)
		return nil, err
	}
	return r.itemsToTasks(ctx, items), nil
}

func (r *implSource) FetchCompletedItems(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	items, err := r.client.CompletedItems(ctx, from, to)
	if err != nil {
		r.l.Errorf(ctx, "dida repository: failed to fetch completed items: %v", err)
		return nil, err
	}
	return r.itemsToTasks(ctx, items), nil
}

func (r *implSource) DownloadAttachment(ctx context.Context, opt repository.DownloadAttachmentOptions) ([]byte, error) {
	data, err := r.client.AttachmentBytes(ctx, opt.ProjectID, opt.TaskID, opt.AttachmentID, opt.Ext)
	if err != nil {
		return nil, fmt.Errorf("attachment %s of task %s: %v: %w", opt.AttachmentID, opt.TaskID, err, repository.ErrAttachmentDownload)
	}
	return data, nil
}

func (r *implSource) itemsToTasks(ctx context.Context, items []Item) []model.Task {
	tasks := make([]model.Task, 0, len(items))
	for _, it := range items {
		tasks = append(tasks, r.itemToTask(ctx, it))
	}
	return tasks
}

// itemToTask converts an API item to the internal model. Timestamps are
// parsed leniently; an unparseable field zeroes out instead of failing the
// whole fetch.
func (r *implSource) itemToTask(ctx context.Context, it Item) model.Task {
	created, ok := parseTime(it.CreatedTime)
	if !ok && it.CreatedTime != "" {
		r.l.Warnf(ctx, "dida repository: task %s has unparseable createdTime %q", it.ID, it.CreatedTime)
	}

	var due *time.Time
	if t, ok := parseTime(it.DueDate); ok {
		due = &t
	}

	attachments := make([]model.Attachment, 0, len(it.Attachments))
	for _, a := range it.Attachments {
		attCreated, _ := parseTime(a.CreatedTime)
		attachments = append(attachments, model.Attachment{
			ID:          a.ID,
			Path:        a.Path,
			FileName:    a.FileName,
			Size:        a.Size,
			CreatedTime: attCreated,
		})
	}

	subItems := make([]model.SubItem, 0, len(it.Items))
	for _, s := range it.Items {
		subItems = append(subItems, model.SubItem{
			Title:  s.Title,
			Status: model.TaskStatus(s.Status),
		})
	}

	return model.Task{
		ID:          it.ID,
		ProjectID:   it.ProjectID,
		Title:       it.Title,
		Content:     it.Content,
		Status:      model.TaskStatus(it.Status),
		Tags:        it.Tags,
		CreatedTime: created,
		DueDate:     due,
		Attachments: attachments,
		Items:       subItems,
		Deleted:     it.Deleted != 0,
	}
}
