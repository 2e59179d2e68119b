package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/lib/logger/sl"
	"recipe_journal/internal/storage"
	"recipe_journal/internal/storage/filestorage"

	"github.com/google/uuid"
)

// UploadPrefix корневой каталог загрузок в хранилище
const UploadPrefix = "blog_uploads"

var ErrFileRequired = errors.New("file is required")

type MediaService struct {
	log         *slog.Logger
	fileStorage filestorage.FileStorage
	maxSize     int64
	timeout     time.Duration
}

// NewMediaService maxSize <= 0 отключает проверку размера, timeout <= 0 -
// ограничение по времени берется только из контекста
func NewMediaService(log *slog.Logger, fileStorage filestorage.FileStorage, maxSize int64, timeout time.Duration) *MediaService {
	return &MediaService{
		log:         log,
		fileStorage: fileStorage,
		maxSize:     maxSize,
		timeout:     timeout,
	}
}

// UploadMedia сохраняет файл в медиа-хранилище и возвращает его публичный URL.
// Каждая загрузка получает новый ключ, повторов при ошибке нет.
func (s *MediaService) UploadMedia(ctx context.Context, file *multipart.FileHeader, kind models.MediaKind) (*models.UploadResult, error) {
	const op = "media_service.UploadMedia"

	log := s.log.With(
		slog.String("op", op),
		slog.String("media_type", string(kind)),
	)

	if file == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrFileRequired)
	}

	if _, err := models.ParseMediaKind(string(kind)); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrInvalidFileType, err)
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		log.Warn("file too large", slog.Int64("size", file.Size), slog.Int64("limit", s.maxSize))

		return nil, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}

	mimeType := detectMimeType(file)
	if mimeType != "" && !strings.HasPrefix(mimeType, kind.MimePrefix()) {
		log.Warn("content type does not match media type", slog.String("mime_type", mimeType))

		return nil, fmt.Errorf("%s: %w: %s", op, storage.ErrInvalidFileType, mimeType)
	}

	key := objectKey(kind, file.Filename)

	log.Info("upload media", slog.String("key", key))

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	size, err := s.fileStorage.Save(ctx, file, key)
	if err != nil {
		log.Error("failed to save file", sl.Err(err))

		return nil, &models.UploadError{Kind: kind, Err: fmt.Errorf("%s: %w", op, err)}
	}

	return &models.UploadResult{
		URL:         s.fileStorage.URL(key),
		Kind:        kind,
		StoragePath: key,
		FileSize:    size,
		MimeType:    mimeType,
	}, nil
}

// objectKey blog_uploads/<kind>/<uuid><ext>
func objectKey(kind models.MediaKind, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(UploadPrefix, string(kind), uuid.NewString()+ext)
}

func detectMimeType(file *multipart.FileHeader) string {
	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mime.TypeByExtension(filepath.Ext(file.Filename))
	}
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	return ""
}
