package http

import (
	"encoding/json"
	"fmt"
	"time"

	"dida-sync/internal/model"
	"dida-sync/internal/task"
	"dida-sync/pkg/response"
)

// startDateLayouts are accepted for the start_date field, most specific
// first.
var startDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// StringOrList accepts a JSON string or array of strings.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// --- Request DTOs ---

type criteriaReq struct {
	Service     string       `json:"service"`
	ProjectID   string       `json:"project_id"`
	TaskID      string       `json:"task_id"`
	StartDate   string       `json:"start_date"`
	Status      string       `json:"status"`
	Tags        StringOrList `json:"tags"`
	ExcludeTags StringOrList `json:"exclude_tags"`

	// populated by validate
	service   model.Service
	status    *model.TaskStatus
	startDate *time.Time
}

func (r *criteriaReq) validate() error {
	raw := r.Service
	if raw == "" {
		raw = string(model.ServiceDida)
	}
	svc, ok := model.ParseService(raw)
	if !ok {
		return fmt.Errorf("unknown service %q", r.Service)
	}
	r.service = svc

	switch r.Status {
	case "":
	case "completed":
		status := model.StatusCompleted
		r.status = &status
	case "uncompleted":
		status := model.StatusUnCompleted
		r.status = &status
	default:
		return fmt.Errorf("unknown status %q", r.Status)
	}

	if r.StartDate != "" {
		parsed, err := parseStartDate(r.StartDate)
		if err != nil {
			return err
		}
		r.startDate = &parsed
	}

	return nil
}

func (r *criteriaReq) toCriteria() model.Criteria {
	return model.Criteria{
		StartDate:   r.startDate,
		ProjectID:   r.ProjectID,
		Tags:        r.Tags,
		ExcludeTags: r.ExcludeTags,
		Status:      r.status,
		TaskID:      r.TaskID,
		Service:     r.service,
	}
}

func parseStartDate(s string) (time.Time, error) {
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable start_date %q", s)
}

type queryReq struct {
	criteriaReq
}

func (r *queryReq) toInput() task.FetchInput {
	return task.FetchInput{Criteria: r.toCriteria()}
}

type syncReq struct {
	criteriaReq
	Document string `json:"document"`
}

func (r *syncReq) toInput() task.SyncInput {
	return task.SyncInput{
		Criteria: r.toCriteria(),
		Document: r.Document,
	}
}

// --- Response DTOs ---

type taskResp struct {
	ID          string             `json:"id"`
	ProjectID   string             `json:"project_id"`
	Title       string             `json:"title"`
	Content     string             `json:"content,omitempty"`
	Status      string             `json:"status"`
	Tags        []string           `json:"tags,omitempty"`
	CreatedTime response.DateTime  `json:"created_time"`
	DueDate     *response.DateTime `json:"due_date,omitempty"`
}

func newTaskResp(t model.Task) taskResp {
	resp := taskResp{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Content:     t.Content,
		Status:      t.Status.String(),
		Tags:        t.Tags,
		CreatedTime: response.DateTime(t.CreatedTime),
	}
	if t.DueDate != nil {
		due := response.DateTime(*t.DueDate)
		resp.DueDate = &due
	}
	return resp
}

type queryResp struct {
	Tasks []taskResp `json:"tasks"`
	Count int        `json:"count"`
}

func (h *handler) newQueryResp(out task.FetchOutput) queryResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(t)
	}
	return queryResp{
		Tasks: tasks,
		Count: out.Count,
	}
}

type syncResp struct {
	Markdown        string `json:"markdown"`
	TaskCount       int    `json:"task_count"`
	AttachmentCount int    `json:"attachment_count"`
	Written         bool   `json:"written"`
}

func (h *handler) newSyncResp(out task.SyncOutput) syncResp {
	return syncResp{
		Markdown:        out.Markdown,
		TaskCount:       out.TaskCount,
		AttachmentCount: out.AttachmentCount,
		Written:         out.Written,
	}
}
