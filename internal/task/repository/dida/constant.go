package dida

import "time"

// Default hosts for the two deployments of the same protocol.
const (
	DidaAPIHost     = "https://api.dida365.com"
	TickTickAPIHost = "https://api.ticktick.com"
)

const (
	signOnPath     = "/api/v2/user/signon?wc=true&remember=true"
	batchCheckPath = "/api/v2/batch/check/0"
	completedPath  = "/api/v2/project/all/completed"
	attachmentPath = "/api/v1/attachment" // + /{projectId}/{taskId}/{attachmentId}{ext}
)

// sessionTTL is the fixed validity window of a sign-on session.
const sessionTTL = 24 * time.Hour

// deviceHeader identifies the client to the sign-on endpoint. The service
// rejects sign-ons without it.
const deviceHeader = `{"platform":"web","os":"macOS 10.15.7","device":"Chrome 114.0.0.0","name":"","version":4562,"id":"64217d45c3630d2326189adc","channel":"website","campaign":"","websocket":""}`

const (
	defaultCompletedLimit    = 999
	defaultRequestsPerMinute = 60
)

// timeLayouts are the timestamp shapes observed in API payloads, most
// specific first.
var timeLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}
