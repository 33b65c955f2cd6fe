package repository

import (
	"context"
	"time"

	"dida-sync/internal/model"
)

// Source is the interface for one backing todo service.
type Source interface {
	// FetchOpenItems returns every currently open item. The remote API applies
	// no date filter here; recency admission happens client-side in the
	// pipeline.
	FetchOpenItems(ctx context.Context) ([]model.Task, error)

	// FetchCompletedItems returns items completed inside the [from, to] window
	// (bounded server-side).
	FetchCompletedItems(ctx context.Context, from, to time.Time) ([]model.Task, error)

	// DownloadAttachment fetches the raw bytes of a single attachment.
	DownloadAttachment(ctx context.Context, opt DownloadAttachmentOptions) ([]byte, error)
}
