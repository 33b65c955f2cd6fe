package task

import (
	"context"

	"dida-sync/internal/model"
)

// UseCase defines the business logic interface for the task sync domain.
type UseCase interface {
	// FetchTasks retrieves the raw item sets from the selected service and runs
	// them through the filter-merge pipeline.
	FetchTasks(ctx context.Context, sc model.Scope, input FetchInput) (FetchOutput, error)

	// SyncDocument runs the full pipeline — fetch, filter, attachment
	// resolution, markdown rendering — and, when allowed, replaces the body of
	// the target vault document.
	SyncDocument(ctx context.Context, sc model.Scope, input SyncInput) (SyncOutput, error)
}
