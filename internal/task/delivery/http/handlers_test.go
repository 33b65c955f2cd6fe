package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"dida-sync/internal/model"
	"dida-sync/internal/task"
	"dida-sync/internal/task/repository"
	"dida-sync/pkg/response"
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

type mockUseCase struct {
	fetchOut  task.FetchOutput
	fetchErr  error
	fetchIn   task.FetchInput
	syncOut   task.SyncOutput
	syncErr   error
	syncIn    task.SyncInput
	fetchRuns int
}

func (m *mockUseCase) FetchTasks(ctx context.Context, sc model.Scope, input task.FetchInput) (task.FetchOutput, error) {
	m.fetchRuns++
	m.fetchIn = input
	return m.fetchOut, m.fetchErr
}

func (m *mockUseCase) SyncDocument(ctx context.Context, sc model.Scope, input task.SyncInput) (task.SyncOutput, error) {
	m.syncIn = input
	return m.syncOut, m.syncErr
}

func newTestRouter(uc task.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(&mockLogger{}, uc)
	RegisterRoutes(r.Group("/api/v1"), h)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuery(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
		uc := &mockUseCase{fetchOut: task.FetchOutput{
			Tasks: []model.Task{{ID: "t1", Title: "Write report", Status: model.StatusUnCompleted, CreatedTime: created}},
			Count: 1,
		}}
		r := newTestRouter(uc)

		w := doJSON(t, r, "/api/v1/dida/tasks/query", `{"service":"dida","tags":["work"]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Data struct {
				Tasks []struct {
					ID          string `json:"id"`
					CreatedTime string `json:"created_time"`
					DueDate     string `json:"due_date"`
				} `json:"tasks"`
				Count int `json:"count"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if resp.Data.Count != 1 || resp.Data.Tasks[0].ID != "t1" {
			t.Errorf("unexpected payload: %+v", resp.Data)
		}
		if want := created.Local().Format(response.DateTimeFormat); resp.Data.Tasks[0].CreatedTime != want {
			t.Errorf("unexpected time format: got %q want %q", resp.Data.Tasks[0].CreatedTime, want)
		}
		if resp.Data.Tasks[0].DueDate != "" {
			t.Errorf("due_date should be omitted when unset: %q", resp.Data.Tasks[0].DueDate)
		}
	})

	t.Run("Tags Accept A Bare String", func(t *testing.T) {
		uc := &mockUseCase{}
		r := newTestRouter(uc)

		w := doJSON(t, r, "/api/v1/dida/tasks/query", `{"service":"dida","tags":"work"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if len(uc.fetchIn.Criteria.Tags) != 1 || uc.fetchIn.Criteria.Tags[0] != "work" {
			t.Errorf("scalar tags not normalized: %v", uc.fetchIn.Criteria.Tags)
		}
	})

	t.Run("Service Defaults To Dida", func(t *testing.T) {
		uc := &mockUseCase{}
		r := newTestRouter(uc)

		w := doJSON(t, r, "/api/v1/dida/tasks/query", `{}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if uc.fetchIn.Criteria.Service != model.ServiceDida {
			t.Errorf("expected default service, got %q", uc.fetchIn.Criteria.Service)
		}
	})

	t.Run("Unknown Service Is Bad Request", func(t *testing.T) {
		uc := &mockUseCase{}
		r := newTestRouter(uc)

		w := doJSON(t, r, "/api/v1/dida/tasks/query", `{"service":"todoist"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if uc.fetchRuns != 0 {
			t.Errorf("use case should not run on invalid criteria")
		}
	})

	t.Run("Unknown Status Is Bad Request", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{})
		w := doJSON(t, r, "/api/v1/dida/tasks/query", `{"status":"paused"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Authentication Failure Maps To 401", func(t *testing.T) {
		uc := &mockUseCase{fetchErr: fmt.Errorf("sign-on: %w", repository.ErrAuthentication)}
		r := newTestRouter(uc)

		w := doJSON(t, r, "/api/v1/dida/tasks/query", `{"service":"dida"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("Retrieval Failure Maps To 500", func(t *testing.T) {
		uc := &mockUseCase{fetchErr: fmt.Errorf("status 502: %w", repository.ErrRetrieval)}
		r := newTestRouter(uc)

		w := doJSON(t, r, "/api/v1/dida/tasks/query", `{"service":"dida"}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestSync(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := &mockUseCase{syncOut: task.SyncOutput{
			Markdown:        "# Write report\n",
			TaskCount:       1,
			AttachmentCount: 2,
			Written:         true,
		}}
		r := newTestRouter(uc)

		w := doJSON(t, r, "/api/v1/dida/sync", `{"service":"ticktick","document":"Tasks.md","start_date":"2024-01-01"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		if uc.syncIn.Document != "Tasks.md" {
			t.Errorf("document not forwarded: %q", uc.syncIn.Document)
		}
		if uc.syncIn.Criteria.Service != model.ServiceTickTick {
			t.Errorf("service not forwarded: %q", uc.syncIn.Criteria.Service)
		}
		if uc.syncIn.Criteria.StartDate == nil || !uc.syncIn.Criteria.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("start_date not parsed: %v", uc.syncIn.Criteria.StartDate)
		}

		var resp struct {
			Data syncResp `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if !resp.Data.Written || resp.Data.TaskCount != 1 || resp.Data.AttachmentCount != 2 {
			t.Errorf("unexpected payload: %+v", resp.Data)
		}
	})

	t.Run("Bad StartDate Is Bad Request", func(t *testing.T) {
		r := newTestRouter(&mockUseCase{})
		w := doJSON(t, r, "/api/v1/dida/sync", `{"start_date":"soon"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
