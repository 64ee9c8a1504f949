package contracts

import (
	"carecapture-service/internal/app/models"
	"context"
)

type BatchBackendClient interface {
	ExecuteBatch(ctx context.Context, request models.BatchRequest) (*models.BatchResponse, error)
}
