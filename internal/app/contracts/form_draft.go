package contracts

import (
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/dto/requests"
	"carecapture-service/internal/pkg/dto/responses"
	"context"
)

type FormDraftUsecase interface {
	CreateFormDraft(ctx context.Context, request *requests.CreateFormDraft) (*responses.FormDraft, error)
	FindFormDraftByID(ctx context.Context, draftID string) (*responses.FormDraft, error)
	AttachQuestionnaire(ctx context.Context, draftID string, request *requests.AttachQuestionnaire) (*responses.FormDraft, error)
	UpdateQuestionResponse(ctx context.Context, draftID, questionnaireID, questionID string, request *requests.UpdateQuestionResponse) (*responses.UpdateQuestionResponse, error)
	ValidateFormDraft(ctx context.Context, draftID string) (*responses.ValidateFormDraft, error)
	SubmitFormDraft(ctx context.Context, draftID string) (*models.SubmissionResult, error)
	DeleteFormDraft(ctx context.Context, draftID string) error
}

type FormDraftRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, draft *models.FormDraft) error
	FindByID(ctx context.Context, draftID string) (*models.FormDraft, error)
	Update(ctx context.Context, draft *models.FormDraft) error
	Delete(ctx context.Context, draftID string) error
}
