package model

import "time"

// Service selects which backing todo service a request targets.
type Service string

const (
	ServiceDida     Service = "dida"
	ServiceTickTick Service = "ticktick"
)

// ParseService maps a raw selector to a Service.
func ParseService(raw string) (Service, bool) {
	switch Service(raw) {
	case ServiceDida:
		return ServiceDida, true
	case ServiceTickTick:
		return ServiceTickTick, true
	}
	return "", false
}

// Criteria is the filter configuration for one sync request.
// Every field except Service is optional; an absent field means
// "no constraint from this dimension".
type Criteria struct {
	StartDate   *time.Time  // lower bound on recency; nil → window default
	ProjectID   string      // exact match
	Tags        []string    // inclusion set, any-of
	ExcludeTags []string    // exclusion set, wins over Tags
	Status      *TaskStatus // exact match
	TaskID      string      // exact match, reduces result to at most one item
	Service     Service     // required
}
