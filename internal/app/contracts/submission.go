package contracts

import (
	"carecapture-service/internal/app/models"
	"context"
)

type SubmissionUsecase interface {
	Submit(ctx context.Context, forms []models.QuestionnaireFormState, requestContext models.RequestContext) (*models.SubmissionResult, error)
}

// FileEncoder turns a file upload into the base64 payload the backend expects.
type FileEncoder interface {
	Encode(ctx context.Context, file models.FileUpload) (string, error)
}

type SubmissionEventPublisher interface {
	PublishSubmitted(ctx context.Context, event models.SubmissionEvent) error
}
