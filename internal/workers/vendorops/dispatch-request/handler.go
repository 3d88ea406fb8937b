// internal/workers/vendor/dispatch-request/handler.go
package dispatchrequest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"platform-workers/internal/common/errors"
	"platform-workers/internal/common/httpclient"
	"platform-workers/internal/common/logger"
	"platform-workers/internal/common/metrics"
	"platform-workers/internal/common/validation"
)

const (
	TaskType = "dispatch-request"
)

type Handler struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *httpclient.Client, log logger.Logger) *Handler {
	if client == nil {
		client = httpclient.NewClient(config.Timeout)
	}
	return &Handler{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute resolves the vendor route, posts the payload as JSON, and returns
// the parsed response body. A vendor not present in the routing table fails
// before any network activity. A non-2xx vendor response is not an error at
// this level; the output carries the status code and an empty body.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	log := h.logger.WithFields(map[string]interface{}{
		"vendor":   input.Vendor,
		"endpoint": input.Endpoint,
	})

	baseURL, ok := h.config.Routes[input.Vendor]
	if !ok {
		log.Warn("vendor not present in routing table", nil)
		return nil, errors.NewUnsupportedVendorError(input.Vendor)
	}

	if h.config.ValidatePayload && h.config.PayloadSchema != nil {
		result, err := validation.ValidatePayload(input.Payload, h.config.PayloadSchema)
		if err != nil {
			return nil, errors.NewValidationFailedError(err.Error())
		}
		if !result.Valid {
			log.Warn("payload rejected by schema", map[string]interface{}{"reason": result.Summary()})
			return nil, errors.NewValidationFailedError(result.Summary())
		}
	}

	// The route base and the endpoint are joined by plain concatenation.
	// Both sides are expected to manage their own slashes.
	url := baseURL + input.Endpoint

	body, err := json.Marshal(input.Payload)
	if err != nil {
		return nil, errors.NewValidationFailedError(fmt.Sprintf("payload not serializable: %v", err))
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewTransportFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range input.Headers {
		req.Header.Set(k, v)
	}

	log.Info("dispatching vendor request", map[string]interface{}{
		"url":       url,
		"requestId": requestID,
	})

	resp, err := h.client.DoWithContext(ctx, req)
	if err != nil {
		metrics.VendorDispatchStatus.WithLabelValues(input.Vendor, "transport_error").Inc()
		return nil, errors.NewTransportFailedError(err)
	}
	defer resp.Body.Close()

	metrics.VendorDispatchStatus.WithLabelValues(input.Vendor, statusClass(resp.StatusCode)).Inc()

	output := &Output{
		StatusCode: resp.StatusCode,
		Body:       map[string]interface{}{},
		URL:        url,
		RequestID:  requestID,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("vendor rejected request", map[string]interface{}{"statusCode": resp.StatusCode})
		return output, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportFailedError(err)
	}

	var parsed map[string]interface{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			log.Warn("vendor response body is not a JSON object", map[string]interface{}{
				"statusCode": resp.StatusCode,
			})
			return output, nil
		}
		output.Body = parsed
	}

	log.Info("vendor request completed", map[string]interface{}{"statusCode": resp.StatusCode})
	return output, nil
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
