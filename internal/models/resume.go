package models

import "unicode/utf8"

type UploadStatus string

const (
	UploadNone      UploadStatus = "none"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
)

// JobContext is the target job as typed by the user. Every field is optional.
type JobContext struct {
	Title           string `json:"job_title" form:"job_title"`
	Requirements    string `json:"job_requirements" form:"job_requirements"`
	ExperienceLevel string `json:"experience_level" form:"experience_level"`
}

// ResumeState is the outcome of the latest upload attempt.
// Status is UploadSuccess iff Text is non-empty and Error is empty.
type ResumeState struct {
	Text     string       `json:"text"`
	FileName string       `json:"file_name"`
	Status   UploadStatus `json:"status"`
	Error    string       `json:"error,omitempty"`
}

// Chars is the character count shown next to the file name.
func (r ResumeState) Chars() int {
	return utf8.RuneCountInString(r.Text)
}

// ConvertedFile is one output descriptor returned by the conversion service.
type ConvertedFile struct {
	FileName string `json:"FileName"`
	FileSize int64  `json:"FileSize"`
	URL      string `json:"Url"`
}

type ConversionResult struct {
	Files []ConvertedFile `json:"Files"`
}
