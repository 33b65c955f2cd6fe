package repository

import "errors"

// Errors shared by every Source implementation.
var (
	// ErrAuthentication covers sign-on failures (bad credentials, network
	// error during sign-on). Fatal for the current sync attempt; never retried
	// automatically.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRetrieval covers network or parse failures while fetching item sets.
	// Fatal for the current sync attempt.
	ErrRetrieval = errors.New("failed to retrieve items")

	// ErrAttachmentDownload covers a single attachment download failure.
	// Recovered per attachment: the item is omitted from the rendered output.
	ErrAttachmentDownload = errors.New("failed to download attachment")
)
