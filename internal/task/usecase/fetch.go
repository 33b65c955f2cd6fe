package usecase

import (
	"context"
	"fmt"
	"time"

	"dida-sync/internal/model"
	"dida-sync/internal/task"
)

// FetchTasks retrieves both item sets from the selected service and runs the
// filter-merge pipeline over them.
func (uc *implUseCase) FetchTasks(ctx context.Context, sc model.Scope, input task.FetchInput) (task.FetchOutput, error) {
	if _, ok := model.ParseService(string(input.Criteria.Service)); !ok {
		return task.FetchOutput{}, fmt.Errorf("%q: %w", input.Criteria.Service, task.ErrUnknownService)
	}

	now := time.Now()
	startDate := uc.resolveStartDate(input.Criteria, now)

	uc.l.Infof(ctx, "FetchTasks: run=%s service=%s startDate=%s", sc.RunID, input.Criteria.Service, startDate.Format(time.RFC3339))

	open, err := uc.facade.FetchOpenItems(ctx, input.Criteria.Service)
	if err != nil {
		uc.l.Errorf(ctx, "FetchTasks: failed to fetch open items: %v", err)
		return task.FetchOutput{}, fmt.Errorf("failed to fetch open items: %w", err)
	}

	completed, err := uc.facade.FetchCompletedItems(ctx, input.Criteria.Service, startDate, now)
	if err != nil {
		uc.l.Errorf(ctx, "FetchTasks: failed to fetch completed items: %v", err)
		return task.FetchOutput{}, fmt.Errorf("failed to fetch completed items: %w", err)
	}

	tasks := mergeAndFilter(open, completed, input.Criteria, startDate)

	uc.l.Infof(ctx, "FetchTasks: open=%d completed=%d surfaced=%d", len(open), len(completed), len(tasks))

	return task.FetchOutput{
		Tasks: tasks,
		Count: len(tasks),
	}, nil
}
