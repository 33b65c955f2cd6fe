package dida

import "time"

// Item is the remote API task object. Only the fields this service reads are
// mapped; unknown fields are ignored by the decoder.
type Item struct {
	ID           string           `json:"id"`
	ProjectID    string           `json:"projectId"`
	SortOrder    int64            `json:"sortOrder"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Desc         string           `json:"desc"`
	Priority     int              `json:"priority"`
	Status       int              `json:"status"`
	Items        []ChecklistItem  `json:"items"`
	Attachments  []AttachmentInfo `json:"attachments"`
	DueDate      string           `json:"dueDate,omitempty"`
	CreatedTime  string           `json:"createdTime"`
	ModifiedTime string           `json:"modifiedTime"`
	Deleted      int              `json:"deleted"`
	Kind         string           `json:"kind"`
	Tags         []string         `json:"tags"`
}

// ChecklistItem is a sub-item inside a task.
type ChecklistItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status int    `json:"status"`
}

// AttachmentInfo describes one attachment of a task.
type AttachmentInfo struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	FileName    string `json:"fileName"`
	Size        int64  `json:"size"`
	CreatedTime string `json:"createdTime"`
}

// batchCheckResponse is the envelope of GET /api/v2/batch/check/0.
type batchCheckResponse struct {
	SyncTaskBean struct {
		Update []Item `json:"update"`
	} `json:"syncTaskBean"`
}

// signOnRequest is the body of POST /api/v2/user/signon.
type signOnRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// parseTime decodes an API timestamp. The service is sloppy about formats
// across endpoints, so several layouts are tried; failure yields a zero time
// rather than an error.
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
