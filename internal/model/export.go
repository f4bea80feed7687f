package model

import "time"

// Export is a rendered CV artifact published to object storage.
// Like every model here it carries no persistence tags and is shared by HTTP, service and storage code.
type Export struct {
	ID          string    `json:"id"`
	CVID        string    `json:"cv_id"`
	Format      string    `json:"format"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
