package repository

import (
	"context"
	"fmt"
	"time"

	"dida-sync/internal/model"
	"dida-sync/internal/task"
)

// Facade routes a logical request to the Source matching its service
// selector. Both backing services speak the same protocol on different hosts,
// so the facade only dispatches; it adds no behavior.
type Facade struct {
	sources map[model.Service]Source
}

// NewFacade creates a facade over the two backing services.
func NewFacade(dida, ticktick Source) *Facade {
	return &Facade{
		sources: map[model.Service]Source{
			model.ServiceDida:     dida,
			model.ServiceTickTick: ticktick,
		},
	}
}

// Source returns the Source registered for the given service.
func (f *Facade) Source(svc model.Service) (Source, error) {
	src, ok := f.sources[svc]
	if !ok || src == nil {
		return nil, fmt.Errorf("no source registered for %q: %w", svc, task.ErrUnknownService)
	}
	return src, nil
}

// FetchOpenItems dispatches to the selected service.
func (f *Facade) FetchOpenItems(ctx context.Context, svc model.Service) ([]model.Task, error) {
	src, err := f.Source(svc)
	if err != nil {
		return nil, err
	}
	return src.FetchOpenItems(ctx)
}

// FetchCompletedItems dispatches to the selected service.
func (f *Facade) FetchCompletedItems(ctx context.Context, svc model.Service, from, to time.Time) ([]model.Task, error) {
	src, err := f.Source(svc)
	if err != nil {
		return nil, err
	}
	return src.FetchCompletedItems(ctx, from, to)
}

// DownloadAttachment dispatches to the selected service.
func (f *Facade) DownloadAttachment(ctx context.Context, svc model.Service, opt DownloadAttachmentOptions) ([]byte, error) {
	src, err := f.Source(svc)
	if err != nil {
		return nil, err
	}
	return src.DownloadAttachment(ctx, opt)
}
