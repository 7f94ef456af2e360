package repository

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MediaRepository stores processed webp images in the object store bucket.
type MediaRepository struct {
	Log        *zap.Logger
	DBObject   *minio.Client
	BucketName string
}

func NewMediaRepository(zap *zap.Logger, minio *minio.Client, bucketName string) *MediaRepository {
	return &MediaRepository{
		Log:        zap,
		DBObject:   minio,
		BucketName: bucketName,
	}
}

func (repository *MediaRepository) UploadImageObject(ctx context.Context, objectKey string, imageFile *bytes.Reader, imageSize int64) error {
	_, err := repository.DBObject.PutObject(ctx, repository.BucketName, objectKey, imageFile, imageSize,
		minio.PutObjectOptions{
			ContentType:  "image/webp",
			CacheControl: "public, max-age=31536000, immutable",
		})
	if err != nil {
		return err
	}

	return nil
}

func (repository *MediaRepository) DeleteImageObject(ctx context.Context, objectKey string) error {
	err := repository.DBObject.RemoveObject(ctx, repository.BucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return err
	}

	return nil
}
