package contracts

import (
	"carecapture-service/internal/app/models"
	"context"
)

type QuestionnaireUsecase interface {
	FindQuestionnaire(ctx context.Context, slug string) (*models.QuestionnaireDetail, error)
}

type QuestionnaireBackendClient interface {
	FindQuestionnaireBySlug(ctx context.Context, slug string) (*models.QuestionnaireDetail, error)
}
