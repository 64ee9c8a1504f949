package batch

import (
	"bytes"
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type batchClient struct {
	BaseUrl    string
	AuthToken  string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewBatchBackendClient(baseUrl, authToken string, timeout time.Duration, logger *zap.Logger) contracts.BatchBackendClient {
	return &batchClient{
		BaseUrl:    baseUrl,
		AuthToken:  authToken,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

// ExecuteBatch posts every request in one call. A non-2xx answer that still
// carries per-request results is returned as is, since individual failures
// are reported inside the results.
func (c *batchClient) ExecuteBatch(ctx context.Context, request models.BatchRequest) (*models.BatchResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("batchClient.ExecuteBatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRequestCountKey, len(request.Requests)),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl+constvars.BackendPathBatchRequests, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderXRequestID, requestID)
	if c.AuthToken != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+c.AuthToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("batchClient.ExecuteBatch error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "batch")
	}

	var result models.BatchResponse
	decodeErr := json.Unmarshal(bodyBytes, &result)

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		if decodeErr == nil && len(result.Results) > 0 {
			c.Log.Warn("batchClient.ExecuteBatch non-2xx with results",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
				zap.Int(constvars.LoggingResultCountKey, len(result.Results)),
			)
			return &result, nil
		}
		statusErr := fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
		c.Log.Error("batchClient.ExecuteBatch unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(statusErr),
		)
		return nil, exceptions.ErrBatchSubmission(exceptions.ErrBackendUnexpectedStatus(statusErr, "batch"))
	}

	if decodeErr != nil {
		c.Log.Error("batchClient.ExecuteBatch error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(decodeErr),
		)
		return nil, exceptions.ErrDecodeResponse(decodeErr, "batch")
	}

	c.Log.Info("batchClient.ExecuteBatch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(result.Results)),
	)
	return &result, nil
}
