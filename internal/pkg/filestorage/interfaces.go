package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the photo storage operations the controllers and
// services depend on.
type FileStorage interface {
	// SavePhoto stores an uploaded image and returns its public path
	// (e.g. /uploads/3f2a....jpg). A nil header returns "" with no error.
	SavePhoto(fileHeader *multipart.FileHeader) (string, error)

	// DeletePhoto removes a stored photo given its public path. Deleting
	// the default placeholder or a missing file is a no-op.
	DeletePhoto(publicPath string) error

	// DefaultPhoto returns the public path of the placeholder image.
	DefaultPhoto() string
}
