package model

// Scope carries request-scoped identity through use cases.
type Scope struct {
	RunID string // unique id of the sync run, set at the delivery edge
}
