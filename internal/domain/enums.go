package domain

// FileType represents the allowed image types for upload.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// JobStatus represents the lifecycle of an upload job.
type JobStatus string

const (
	JobStatusPending            JobStatus = "pending"
	JobStatusProcessing         JobStatus = "processing"
	JobStatusCompleted          JobStatus = "completed"
	JobStatusRequiresValidation JobStatus = "requires_validation"
	JobStatusFailed             JobStatus = "failed"
)

// IsTerminal reports whether no further processing happens in this status.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusRequiresValidation, JobStatusFailed:
		return true
	}
	return false
}

// OCRBackend selects the text-extraction backend for a job.
type OCRBackend string

const (
	OCRBackendLocal       OCRBackend = "local-engine"
	OCRBackendTextDetect  OCRBackend = "cloud-text-detect"
	OCRBackendCloudVision OCRBackend = "cloud-vision"
)

// ParseOCRBackend returns the backend for s, or false when s names none.
func ParseOCRBackend(s string) (OCRBackend, bool) {
	switch b := OCRBackend(s); b {
	case OCRBackendLocal, OCRBackendTextDetect, OCRBackendCloudVision:
		return b, true
	}
	return "", false
}

// ImageVariant names a preprocessed rendition of an uploaded image.
type ImageVariant string

const (
	VariantNormal   ImageVariant = "normal"
	VariantInverted ImageVariant = "inverted"
)

// ScreenType is the layout a block of screen text was classified as.
type ScreenType string

const (
	ScreenList   ScreenType = "roster_list"
	ScreenDetail ScreenType = "player_detail"
)
