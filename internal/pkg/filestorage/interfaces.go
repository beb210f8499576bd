package filestorage

import "mime/multipart"

// Storage abstracts where uploaded files live.
type Storage interface {
	SaveFile(fileHeader *multipart.FileHeader) (string, error)
	DeleteFile(filePath string) error
	ResolvePath(filePath string) (string, error)
}
