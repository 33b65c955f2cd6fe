package usecase

import (
	"context"
	"path"
	"sync"

	"dida-sync/internal/model"
	"dida-sync/internal/task/repository"
)

// resolveAllAttachments materializes the attachments of every task, fanning
// out per task. Results are keyed by task id for the renderer.
func (uc *implUseCase) resolveAllAttachments(ctx context.Context, svc model.Service, tasks []model.Task) map[string][]model.ResolvedAttachment {
	results := make([][]model.ResolvedAttachment, len(tasks))

	var wg sync.WaitGroup
	for i, t := range tasks {
		if len(t.Attachments) == 0 {
			continue
		}
		wg.Add(1)
		go func(i int, t model.Task) {
			defer wg.Done()
			results[i] = uc.resolveAttachments(ctx, svc, t)
		}(i, t)
	}
	wg.Wait()

	resolved := make(map[string][]model.ResolvedAttachment, len(tasks))
	for i, t := range tasks {
		if len(results[i]) > 0 {
			resolved[t.ID] = results[i]
		}
	}
	return resolved
}

// resolveAttachments materializes one task's attachments concurrently. A
// failed item is logged with the task id and omitted; it never aborts its
// siblings. An artifact already present in the vault is reused without
// touching the network.
func (uc *implUseCase) resolveAttachments(ctx context.Context, svc model.Service, t model.Task) []model.ResolvedAttachment {
	results := make([]*model.ResolvedAttachment, len(t.Attachments))

	var wg sync.WaitGroup
	for i, att := range t.Attachments {
		wg.Add(1)
		go func(i int, att model.Attachment) {
			defer wg.Done()

			if p, ok := uc.vault.FindAttachment(att.ID); ok {
				results[i] = &model.ResolvedAttachment{ID: att.ID, Name: att.FileName, Path: p}
				return
			}

			data, err := uc.facade.DownloadAttachment(ctx, svc, repository.DownloadAttachmentOptions{
				ProjectID:    t.ProjectID,
				TaskID:       t.ID,
				AttachmentID: att.ID,
				Ext:          path.Ext(att.Path),
			})
			if err != nil {
				uc.l.Warnf(ctx, "resolveAttachments: task=%s attachment=%s download failed: %v", t.ID, att.ID, err)
				return
			}

			p, err := uc.vault.SaveAttachment(att.ID, att.FileName, data)
			if err != nil {
				uc.l.Warnf(ctx, "resolveAttachments: task=%s attachment=%s save failed: %v", t.ID, att.ID, err)
				return
			}
			results[i] = &model.ResolvedAttachment{ID: att.ID, Name: att.FileName, Path: p}
		}(i, att)
	}
	wg.Wait()

	resolved := make([]model.ResolvedAttachment, 0, len(results))
	for _, r := range results {
		if r != nil {
			resolved = append(resolved, *r)
		}
	}
	return resolved
}
