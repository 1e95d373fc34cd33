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

const (
	MimePDF         = "application/pdf"
	MimeText        = "text/plain"
	MimeOctetStream = "application/octet-stream"
	MimeZip         = "application/zip" // docx/pptx containers sniff as zip
	MimeMSWord      = "application/msword"
	MimeMSCompound  = "application/x-ole-storage" // legacy doc/ppt
)

// AllowedUploadMimeTypes are the sniffed types accepted for file uploads.
var AllowedUploadMimeTypes = []string{
	MimePDF,
	MimeText,
	MimeZip,
	MimeMSWord,
	MimeMSCompound,
	MimeOctetStream,
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)
