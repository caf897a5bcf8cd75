package filestorage

// StoredFile describes a file written to storage
type StoredFile struct {
	Path     string // path relative to the storage root
	Filename string // name the caller asked for
	FileSize int64
}

// FileStorage stores generated artifacts
type FileStorage interface {
	// SaveBytes writes data under subPath with a unique name keeping the extension of filename
	SaveBytes(subPath, filename string, data []byte) (*StoredFile, error)

	// DeleteFile removes a file previously returned by SaveBytes
	DeleteFile(relPath string) error

	// GetFullPath returns the filesystem path of a stored file
	GetFullPath(relPath string) string
}
