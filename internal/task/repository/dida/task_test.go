package dida_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"dida-sync/internal/model"
	"dida-sync/internal/task/repository"
	"dida-sync/internal/task/repository/dida"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04:05.000-0700", s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return parsed
}

func TestSourceMapping(t *testing.T) {
	api := newFakeAPI()
	ts := httptest.NewServer(api.mux)
	defer ts.Close()

	api.openItems = []dida.Item{
		{
			ID:          "task-1",
			ProjectID:   "proj-9",
			Title:       "Write report",
			Content:     "# Notes\n\nbody",
			Status:      0,
			Tags:        []string{"work", "report"},
			CreatedTime: "2024-01-10T08:00:00.000+0000",
			DueDate:     "2024-01-20T17:00:00.000+0000",
			Deleted:     1,
			Items: []dida.ChecklistItem{
				{ID: "s1", Title: "draft", Status: 2},
				{ID: "s2", Title: "review", Status: 0},
			},
			Attachments: []dida.AttachmentInfo{
				{ID: "att-1", Path: "/files/att-1.png", FileName: "chart.png", Size: 512, CreatedTime: "2024-01-10T08:01:00.000+0000"},
			},
		},
	}

	client := dida.NewClient(dida.Options{
		Username: "u", Password: "p", APIHost: ts.URL, RequestsPerMinute: 6000,
	}, &mockLogger{})
	src := dida.New(client, &mockLogger{})
	ctx := context.Background()

	tasks, err := src.FetchOpenItems(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	got := tasks[0]
	if got.ID != "task-1" || got.ProjectID != "proj-9" || got.Title != "Write report" {
		t.Errorf("identity fields not mapped: %+v", got)
	}
	if got.Status != model.StatusUnCompleted {
		t.Errorf("expected UnCompleted status, got %v", got.Status)
	}
	if !got.Deleted {
		t.Errorf("deleted flag not mapped")
	}
	if want := mustTime(t, "2024-01-10T08:00:00.000+0000"); !got.CreatedTime.Equal(want) {
		t.Errorf("createdTime mismatch: got %v want %v", got.CreatedTime, want)
	}
	if got.DueDate == nil || !got.DueDate.Equal(mustTime(t, "2024-01-20T17:00:00.000+0000")) {
		t.Errorf("dueDate mismatch: %v", got.DueDate)
	}
	if len(got.Items) != 2 || got.Items[0].Status != model.StatusCompleted || got.Items[1].Title != "review" {
		t.Errorf("sub-items not mapped in order: %+v", got.Items)
	}
	if len(got.Attachments) != 1 || got.Attachments[0].FileName != "chart.png" || got.Attachments[0].Size != 512 {
		t.Errorf("attachments not mapped: %+v", got.Attachments)
	}

	t.Run("Unparseable CreatedTime Zeroes Out", func(t *testing.T) {
		api.openItems = []dida.Item{{ID: "task-2", CreatedTime: "not-a-time"}}
		tasks, err := src.FetchOpenItems(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !tasks[0].CreatedTime.IsZero() {
			t.Errorf("expected zero createdTime, got %v", tasks[0].CreatedTime)
		}
	})

	t.Run("DownloadAttachment Wraps Failure", func(t *testing.T) {
		_, err := src.DownloadAttachment(ctx, repository.DownloadAttachmentOptions{
			ProjectID: "proj-9", TaskID: "task-1", AttachmentID: "missing", Ext: ".png",
		})
		if !errors.Is(err, repository.ErrAttachmentDownload) {
			t.Errorf("expected ErrAttachmentDownload, got %v", err)
		}
	})
}
