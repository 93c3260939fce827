package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// Upload MIME checks
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedVideoExtensions        = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
	AllowedPresentationExtensions = []string{".pdf", ".ppt", ".pptx", ".key"}

	ImageMimeTypes = []string{MimeImage}
	VideoMimeTypes = []string{MimeVideo, MimeOctetStream}
	// Office formats sniff as zip or octet-stream, so the extension check
	// carries most of the weight for presentations.
	PresentationMimeTypes = []string{MimePDF, MimeOctetStream, "application/zip"}
)
