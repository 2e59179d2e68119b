package filestorage_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"recipe_journal/internal/storage/filestorage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockS3API мок клиента S3
type MockS3API struct {
	mock.Mock
}

func (m *MockS3API) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3API) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func TestS3FileStorage_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("puts object with declared content type", func(t *testing.T) {
		client := new(MockS3API)
		fs := filestorage.NewS3FileStorageWithClient(client, "media", "https://cdn.test/")
		file := createTestFile(t, "photo.jpg", "image/jpeg", "jpeg-bytes")

		client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, err := io.ReadAll(in.Body)
			return err == nil &&
				string(body) == "jpeg-bytes" &&
				aws.ToString(in.Bucket) == "media" &&
				aws.ToString(in.Key) == "blog_uploads/image/x.jpg" &&
				aws.ToString(in.ContentType) == "image/jpeg" &&
				aws.ToInt64(in.ContentLength) == int64(len("jpeg-bytes"))
		})).Return(&s3.PutObjectOutput{}, nil).Once()

		size, err := fs.Save(ctx, file, "blog_uploads/image/x.jpg")
		require.NoError(t, err)
		assert.Equal(t, int64(10), size)
		assert.Equal(t, "https://cdn.test/blog_uploads/image/x.jpg", fs.URL("blog_uploads/image/x.jpg"))
		client.AssertExpectations(t)
	})

	t.Run("guesses content type from extension", func(t *testing.T) {
		client := new(MockS3API)
		fs := filestorage.NewS3FileStorageWithClient(client, "media", "https://cdn.test")
		file := createTestFile(t, "cover.png", "", "png")
		file.Header.Del("Content-Type")

		client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.ContentType) == "image/png"
		})).Return(&s3.PutObjectOutput{}, nil).Once()

		_, err := fs.Save(ctx, file, "blog_uploads/image/y.png")
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("put failure", func(t *testing.T) {
		client := new(MockS3API)
		fs := filestorage.NewS3FileStorageWithClient(client, "media", "https://cdn.test")
		file := createTestFile(t, "photo.jpg", "image/jpeg", "jpeg-bytes")
		putErr := errors.New("access denied")

		client.On("PutObject", ctx, mock.Anything).Return(nil, putErr).Once()

		_, err := fs.Save(ctx, file, "blog_uploads/image/x.jpg")
		assert.ErrorIs(t, err, putErr)
	})
}

func TestS3FileStorage_Delete(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3API)
	fs := filestorage.NewS3FileStorageWithClient(client, "media", "https://cdn.test")

	client.On("DeleteObject", ctx, &s3.DeleteObjectInput{
		Bucket: aws.String("media"),
		Key:    aws.String("blog_uploads/image/x.jpg"),
	}).Return(&s3.DeleteObjectOutput{}, nil).Once()

	require.NoError(t, fs.Delete(ctx, "blog_uploads/image/x.jpg"))
	client.AssertExpectations(t)
}

func TestNewS3FileStorage(t *testing.T) {
	t.Run("bucket required", func(t *testing.T) {
		_, err := filestorage.NewS3FileStorage(context.Background(), filestorage.S3Config{})
		assert.Error(t, err)
	})

	t.Run("custom endpoint uses path style url", func(t *testing.T) {
		fs, err := filestorage.NewS3FileStorage(context.Background(), filestorage.S3Config{
			Region:    "eu-central-1",
			Bucket:    "media",
			Endpoint:  "http://minio:9000/",
			AccessKey: "key",
			SecretKey: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "http://minio:9000/media/a.jpg", fs.URL("a.jpg"))
	})

	t.Run("public base url wins", func(t *testing.T) {
		fs, err := filestorage.NewS3FileStorage(context.Background(), filestorage.S3Config{
			Region:        "eu-central-1",
			Bucket:        "media",
			AccessKey:     "key",
			SecretKey:     "secret",
			PublicBaseURL: "https://cdn.test",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/a.jpg", fs.URL("a.jpg"))
	})
}
