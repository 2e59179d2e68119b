package services_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/lib/logger/handlers/slogdiscard"
	services "recipe_journal/internal/services/media_service"
	"recipe_journal/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(ctx context.Context, file *multipart.FileHeader, key string) (int64, error) {
	args := m.Called(ctx, file, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFileStorage) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func createTestFile(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)}
	if contentType != "" {
		h["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	err = writer.Close()
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

var imageKey = regexp.MustCompile(`^blog_uploads/image/[0-9a-f-]{36}\.jpg$`)

func TestMediaService_UploadMedia(t *testing.T) {
	ctx := context.Background()
	log := slogdiscard.NewDiscardLogger()

	t.Run("successful upload", func(t *testing.T) {
		mockStorage := new(MockFileStorage)
		service := services.NewMediaService(log, mockStorage, 1024, time.Second)
		testFile := createTestFile(t, "Photo.JPG", "image/jpeg", "test content")

		var savedKey string
		mockStorage.On("Save", mock.Anything, testFile, mock.MatchedBy(imageKey.MatchString)).
			Run(func(args mock.Arguments) { savedKey = args.String(2) }).
			Return(int64(12), nil).Once()
		mockStorage.On("URL", mock.Anything).
			Return("http://test.local/uploads/key").Once()

		result, err := service.UploadMedia(ctx, testFile, models.MediaKindImage)
		require.NoError(t, err)

		assert.Equal(t, "http://test.local/uploads/key", result.URL)
		assert.Equal(t, models.MediaKindImage, result.Kind)
		assert.Equal(t, savedKey, result.StoragePath)
		assert.Equal(t, int64(12), result.FileSize)
		assert.Equal(t, "image/jpeg", result.MimeType)
		mockStorage.AssertExpectations(t)
	})

	t.Run("every upload gets a new key", func(t *testing.T) {
		mockStorage := new(MockFileStorage)
		service := services.NewMediaService(log, mockStorage, 0, 0)
		testFile := createTestFile(t, "a.jpg", "image/jpeg", "x")

		var keys []string
		mockStorage.On("Save", mock.Anything, testFile, mock.Anything).
			Run(func(args mock.Arguments) { keys = append(keys, args.String(2)) }).
			Return(int64(1), nil).Twice()
		mockStorage.On("URL", mock.Anything).Return("u")

		_, err := service.UploadMedia(ctx, testFile, models.MediaKindImage)
		require.NoError(t, err)
		_, err = service.UploadMedia(ctx, testFile, models.MediaKindImage)
		require.NoError(t, err)

		require.Len(t, keys, 2)
		assert.NotEqual(t, keys[0], keys[1])
	})

	t.Run("missing file", func(t *testing.T) {
		service := services.NewMediaService(log, new(MockFileStorage), 0, 0)

		_, err := service.UploadMedia(ctx, nil, models.MediaKindImage)
		assert.ErrorIs(t, err, services.ErrFileRequired)
	})

	t.Run("file too large", func(t *testing.T) {
		mockStorage := new(MockFileStorage)
		service := services.NewMediaService(log, mockStorage, 4, 0)
		testFile := createTestFile(t, "big.jpg", "image/jpeg", "too much content")

		_, err := service.UploadMedia(ctx, testFile, models.MediaKindImage)
		assert.ErrorIs(t, err, storage.ErrFileTooLarge)
		mockStorage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("content type does not match kind", func(t *testing.T) {
		mockStorage := new(MockFileStorage)
		service := services.NewMediaService(log, mockStorage, 0, 0)
		testFile := createTestFile(t, "clip.jpg", "image/jpeg", "x")

		_, err := service.UploadMedia(ctx, testFile, models.MediaKindVideo)
		assert.ErrorIs(t, err, storage.ErrInvalidFileType)
		assert.False(t, models.IsUploadError(err))
		mockStorage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown kind", func(t *testing.T) {
		service := services.NewMediaService(log, new(MockFileStorage), 0, 0)
		testFile := createTestFile(t, "a.jpg", "image/jpeg", "x")

		_, err := service.UploadMedia(ctx, testFile, models.MediaKind("audio"))
		assert.ErrorIs(t, err, storage.ErrInvalidFileType)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockStorage := new(MockFileStorage)
		service := services.NewMediaService(log, mockStorage, 0, 0)
		testFile := createTestFile(t, "a.jpg", "image/jpeg", "x")
		saveErr := errors.New("disk full")

		mockStorage.On("Save", mock.Anything, testFile, mock.Anything).
			Return(int64(0), saveErr).Once()

		result, err := service.UploadMedia(ctx, testFile, models.MediaKindImage)
		assert.Nil(t, result)
		assert.True(t, models.IsUploadError(err))
		assert.ErrorIs(t, err, saveErr)
		mockStorage.AssertNotCalled(t, "URL", mock.Anything)
	})

	t.Run("storage call gets a deadline", func(t *testing.T) {
		mockStorage := new(MockFileStorage)
		service := services.NewMediaService(log, mockStorage, 0, time.Minute)
		testFile := createTestFile(t, "a.jpg", "image/jpeg", "x")

		mockStorage.On("Save", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}), testFile, mock.Anything).Return(int64(1), nil).Once()
		mockStorage.On("URL", mock.Anything).Return("u").Once()

		_, err := service.UploadMedia(ctx, testFile, models.MediaKindImage)
		require.NoError(t, err)
		mockStorage.AssertExpectations(t)
	})
}
