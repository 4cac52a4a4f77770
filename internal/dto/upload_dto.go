package dto

// UploadResponse describes a stored upload.
type UploadResponse struct {
	URL       string `json:"url"`
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	Checksum  string `json:"checksum"`
}
