package repository

// DownloadAttachmentOptions identifies one attachment on the remote service.
// The remote path encodes the original file extension, which the download URL
// must carry as well.
type DownloadAttachmentOptions struct {
	ProjectID    string
	TaskID       string
	AttachmentID string
	Ext          string // original file extension with leading dot, may be empty
}
