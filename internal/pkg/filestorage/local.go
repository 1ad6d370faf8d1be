package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vgsantoni/registro/internal/pkg/apperrors"
	"github.com/vgsantoni/registro/internal/pkg/logger"
)

// DefaultPhotoFilename is the placeholder every estudante without an
// uploaded photo points at. It is never deleted.
const DefaultPhotoFilename = "default.jpg"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalStorage stores photos on the local filesystem and serves them under
// a public URL path.
type LocalStorage struct {
	basePath   string
	publicPath string
	maxBytes   int64
}

// NewLocalStorage creates the storage directory if needed.
func NewLocalStorage(basePath, publicPath string, maxSizeMB int) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath:   basePath,
		publicPath: strings.TrimRight(publicPath, "/"),
		maxBytes:   int64(maxSizeMB) * 1024 * 1024,
	}, nil
}

// DefaultPhoto returns the public path of the placeholder image.
func (ls *LocalStorage) DefaultPhoto() string {
	return ls.publicPath + "/" + DefaultPhotoFilename
}

// SavePhoto validates and stores an uploaded image under a generated name.
func (ls *LocalStorage) SavePhoto(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", apperrors.NewValidationError(fmt.Sprintf("Formato de imagem não suportado: %s", ext))
	}
	if fileHeader.Size > ls.maxBytes {
		return "", apperrors.NewValidationError(fmt.Sprintf("Imagem excede o limite de %d MB", ls.maxBytes/(1<<20)))
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	publicPath := ls.publicPath + "/" + uniqueFilename
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Msg("Photo saved")
	return publicPath, nil
}

// DeletePhoto removes a stored photo. The default placeholder and missing
// files are left alone.
func (ls *LocalStorage) DeletePhoto(publicPath string) error {
	if publicPath == "" {
		return nil
	}

	filename := filepath.Base(publicPath)
	if filename == "" || filename == "." || filename == "/" || filename == DefaultPhotoFilename {
		return nil
	}

	physicalPath := filepath.Join(ls.basePath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Photo to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete photo")
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("Photo deleted")
	return nil
}
