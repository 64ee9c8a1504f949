package requestCompiler

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"encoding/base64"
	"errors"

	"go.uber.org/zap"
)

var errEmptyFile = errors.New("file upload carries no content")

type fileEncoder struct {
	Storage    contracts.Storage
	BucketName string
	Log        *zap.Logger
}

// NewFileEncoder encodes inline payloads directly and reads payloads stored by
// object name from bucketName first.
func NewFileEncoder(storage contracts.Storage, bucketName string, logger *zap.Logger) contracts.FileEncoder {
	return &fileEncoder{
		Storage:    storage,
		BucketName: bucketName,
		Log:        logger,
	}
}

func (e *fileEncoder) Encode(ctx context.Context, file models.FileUpload) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if file.FileData.IsEmpty() {
		return "", exceptions.ErrEncodeFile(errEmptyFile, file.OriginalName)
	}
	if len(file.FileData.Content) > 0 {
		return base64.StdEncoding.EncodeToString(file.FileData.Content), nil
	}

	e.Log.Info("fileEncoder.Encode reading stored object",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, e.BucketName),
		zap.String(constvars.LoggingObjectNameKey, file.FileData.ObjectName),
	)

	content, _, err := e.Storage.GetObject(ctx, e.BucketName, file.FileData.ObjectName)
	if err != nil {
		e.Log.Error("fileEncoder.Encode error reading stored object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, file.FileData.ObjectName),
			zap.Error(err),
		)
		return "", exceptions.ErrEncodeFile(err, file.OriginalName)
	}
	if len(content) == 0 {
		return "", exceptions.ErrEncodeFile(errEmptyFile, file.OriginalName)
	}
	return base64.StdEncoding.EncodeToString(content), nil
}
