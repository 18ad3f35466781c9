package model

// UploadTicket is a backend-issued, single-use authorization for one direct
// client-to-storage PUT. It is ephemeral: consumed by exactly one upload and
// never persisted.
type UploadTicket struct {
	// UploadURL is the presigned URL the file bytes are PUT to.
	UploadURL string `json:"upload_url"`
	// PublicURL is the permanent URL to persist into the owning record's
	// image field once (and only once) the PUT succeeds.
	PublicURL string `json:"public_url"`
	// Headers are additional headers the storage provider requires on the PUT.
	Headers map[string]string `json:"headers,omitempty"`
}
