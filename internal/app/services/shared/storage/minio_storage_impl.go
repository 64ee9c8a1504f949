package storage

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

// GetObject reads a whole object and returns it with its content type.
func (m *minioStorage) GetObject(ctx context.Context, bucketName, objectName string) ([]byte, string, error) {
	object, err := m.MinioClient.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", exceptions.ErrMinioGetObject(err, bucketName)
	}
	defer object.Close()

	info, err := object.Stat()
	if err != nil {
		return nil, "", exceptions.ErrMinioGetObject(err, bucketName)
	}

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, "", exceptions.ErrMinioGetObject(err, bucketName)
	}
	return content, info.ContentType, nil
}
