package usecase

import (
	"context"
	"fmt"

	"dida-sync/internal/model"
	"dida-sync/internal/task"
)

// SyncDocument runs the full pipeline and, when allowed, replaces the body of
// the target document with the rendered markdown. The document is only
// touched after every prior stage succeeded.
func (uc *implUseCase) SyncDocument(ctx context.Context, sc model.Scope, input task.SyncInput) (task.SyncOutput, error) {
	fetched, err := uc.FetchTasks(ctx, sc, task.FetchInput{Criteria: input.Criteria})
	if err != nil {
		return task.SyncOutput{}, err
	}

	resolved := uc.resolveAllAttachments(ctx, input.Criteria.Service, fetched.Tasks)

	rendered, err := uc.renderer.RenderTasks(fetched.Tasks, resolved)
	if err != nil {
		uc.l.Errorf(ctx, "SyncDocument: render failed: %v", err)
		return task.SyncOutput{}, err
	}

	attachmentCount := 0
	for _, atts := range resolved {
		attachmentCount += len(atts)
	}

	out := task.SyncOutput{
		Markdown:        rendered,
		TaskCount:       fetched.Count,
		AttachmentCount: attachmentCount,
	}

	if input.Document == "" {
		uc.l.Debugf(ctx, "SyncDocument: no target document, render only")
		return out, nil
	}
	if uc.disableAutoAction {
		uc.l.Infof(ctx, "SyncDocument: auto action disabled, skipping write of %s", input.Document)
		return out, nil
	}

	if err := uc.vault.WriteBody(input.Document, rendered); err != nil {
		uc.l.Errorf(ctx, "SyncDocument: failed to write %s: %v", input.Document, err)
		return task.SyncOutput{}, fmt.Errorf("failed to write document %s: %w", input.Document, err)
	}
	out.Written = true

	uc.l.Infof(ctx, "SyncDocument: run=%s wrote %s (tasks=%d attachments=%d)", sc.RunID, input.Document, out.TaskCount, out.AttachmentCount)

	return out, nil
}
