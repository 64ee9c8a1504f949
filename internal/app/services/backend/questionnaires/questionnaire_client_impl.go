package questionnaires

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type questionnaireClient struct {
	BaseUrl    string
	AuthToken  string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewQuestionnaireBackendClient(baseUrl, authToken string, timeout time.Duration, logger *zap.Logger) contracts.QuestionnaireBackendClient {
	return &questionnaireClient{
		BaseUrl:    baseUrl,
		AuthToken:  authToken,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

func (c *questionnaireClient) FindQuestionnaireBySlug(ctx context.Context, slug string) (*models.QuestionnaireDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("questionnaireClient.FindQuestionnaireBySlug called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireSlug, slug),
	)

	endpoint := c.BaseUrl + fmt.Sprintf(constvars.BackendPathQuestionnaireFormat, url.PathEscape(slug))
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderXRequestID, requestID)
	if c.AuthToken != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+c.AuthToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("questionnaireClient.FindQuestionnaireBySlug error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		return nil, exceptions.ErrQuestionnaireNotFound(nil, slug)
	}
	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		statusErr := fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
		c.Log.Error("questionnaireClient.FindQuestionnaireBySlug unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(statusErr),
		)
		return nil, exceptions.ErrBackendUnexpectedStatus(statusErr, "questionnaire")
	}

	var questionnaire models.QuestionnaireDetail
	if err := json.NewDecoder(resp.Body).Decode(&questionnaire); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "questionnaire")
	}
	if questionnaire.Slug == "" {
		questionnaire.Slug = slug
	}

	c.Log.Info("questionnaireClient.FindQuestionnaireBySlug succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)
	return &questionnaire, nil
}
