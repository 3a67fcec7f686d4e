package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/studyflow/back/internal/utils"
)

const (
	// DefaultCanvasTimeout bounds a single Canvas request
	DefaultCanvasTimeout = 30 * time.Second
	// MaxCanvasResponseBytes matches the inbound request body cap
	MaxCanvasResponseBytes = 10 << 20
)

type canvasClient struct {
	client       *http.Client
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewCanvasClient creates a Canvas client. A nil httpClient gets one with the given timeout.
func NewCanvasClient(httpClient *http.Client, timeout time.Duration, logger *zap.Logger) CanvasClient {
	if timeout <= 0 {
		timeout = DefaultCanvasTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Timeout == 0 {
		// copy so the caller's client is left untouched
		withTimeout := *httpClient
		withTimeout.Timeout = timeout
		httpClient = &withTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &canvasClient{
		client:       httpClient,
		logger:       logger,
		maxBodyBytes: MaxCanvasResponseBytes,
	}
}

func (c *canvasClient) Get(ctx context.Context, baseURL, accessToken, endpoint string) (*CanvasResponse, error) {
	target := baseURL + endpoint

	c.logger.Info("canvas proxy request",
		zap.String("target", target),
		zap.String("token", utils.MaskSecret(accessToken)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid canvas url: %v", err))
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("canvas request timed out", zap.String("target", target))
			return nil, NewTimeoutError(fmt.Sprintf("canvas request timed out after %s", c.client.Timeout), err)
		}
		c.logger.Warn("canvas request failed", zap.String("target", target), zap.Error(err))
		return nil, NewNetworkError("failed to reach canvas", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		if isTimeout(err) {
			return nil, NewTimeoutError("canvas response timed out", err)
		}
		return nil, NewNetworkError("failed to read canvas response", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		c.logger.Warn("canvas response too large", zap.String("target", target), zap.Int64("limit", c.maxBodyBytes))
		return nil, NewInvalidResponseError(fmt.Sprintf("canvas response exceeds %d bytes", c.maxBodyBytes), nil)
	}

	c.logger.Info("canvas proxy response",
		zap.String("target", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("length", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &CanvasResponse{
			Status: resp.StatusCode,
			OK:     false,
			Body:   string(body),
		}, nil
	}

	if len(body) == 0 {
		body = []byte("null")
	}

	if !json.Valid(body) {
		return nil, NewInvalidResponseError(fmt.Sprintf("canvas returned a non-JSON body (status %d)", resp.StatusCode), nil)
	}

	return &CanvasResponse{
		Status: resp.StatusCode,
		OK:     true,
		Data:   json.RawMessage(body),
		Body:   string(body),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
