package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypeTXT FileType = "txt"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"txt": FileTypeTXT,
}

// ContentTypeText is stored with original decision texts in object storage.
const ContentTypeText = "text/plain; charset=utf-8"

// UserRole defines what an API token may do.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

// ImportResult labels the per-document outcome of a batch import.
type ImportResult string

const (
	ImportResultImported ImportResult = "imported"
	ImportResultExisting ImportResult = "already_existed"
	ImportResultFailed   ImportResult = "failed"
)

// ExportFormat is the file format of a decision export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps export formats to their MIME type.
var ExportContentTypes = map[ExportFormat]string{
	ExportCSV:  "text/csv",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}
