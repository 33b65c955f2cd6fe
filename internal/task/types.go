package task

import "dida-sync/internal/model"

// FetchInput is the input for the filter-merge pipeline.
type FetchInput struct {
	Criteria model.Criteria
}

// FetchOutput is the ordered, filtered task list.
type FetchOutput struct {
	Tasks []model.Task
	Count int
}

// SyncInput is the input for a document sync run.
type SyncInput struct {
	Criteria model.Criteria
	Document string // vault-relative path of the target document; empty → render only
}

// SyncOutput is the result of a document sync run.
type SyncOutput struct {
	Markdown        string // full rendered fragment, pipeline order
	TaskCount       int
	AttachmentCount int  // attachments successfully resolved
	Written         bool // whether the target document was updated
}
