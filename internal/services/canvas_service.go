package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/studyflow/back/internal/clients"
	"github.com/studyflow/back/internal/models"
	"github.com/studyflow/back/internal/utils"
)

// CanvasService forwards GET calls to a caller-specified Canvas instance
type CanvasService interface {
	Proxy(ctx context.Context, req models.CanvasProxyRequest) (*models.CanvasProxyResponse, error)
}

type canvasService struct {
	client clients.CanvasClient
	logger *zap.Logger
}

func NewCanvasService(client clients.CanvasClient, logger *zap.Logger) CanvasService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &canvasService{
		client: client,
		logger: logger,
	}
}

// Proxy validates the request before touching the network.
// A non-2xx Canvas answer is not an error: it comes back with OK=false and the upstream status.
func (s *canvasService) Proxy(ctx context.Context, req models.CanvasProxyRequest) (*models.CanvasProxyResponse, error) {
	canvasURL := strings.TrimSpace(req.CanvasURL)
	accessToken := strings.TrimSpace(req.AccessToken)
	endpoint := strings.TrimSpace(req.Endpoint)

	var missing []string
	if canvasURL == "" {
		missing = append(missing, "canvasUrl")
	}
	if accessToken == "" {
		missing = append(missing, "accessToken")
	}
	if endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if len(missing) > 0 {
		return nil, clients.NewValidationError(fmt.Sprintf("missing required parameters: %s", strings.Join(missing, ", ")))
	}

	baseURL := NormalizeCanvasURL(canvasURL)

	s.logger.Debug("proxying canvas request",
		zap.String("base_url", baseURL),
		zap.String("endpoint", endpoint),
		zap.String("token", utils.MaskSecret(accessToken)),
	)

	resp, err := s.client.Get(ctx, baseURL, accessToken, endpoint)
	if err != nil {
		return nil, err
	}

	if !resp.OK {
		body := resp.Body
		return &models.CanvasProxyResponse{
			Data:   nil,
			Status: resp.Status,
			OK:     false,
			Error:  &body,
		}, nil
	}

	return &models.CanvasProxyResponse{
		Data:   resp.Data,
		Status: resp.Status,
		OK:     true,
		Error:  nil,
	}, nil
}

// NormalizeCanvasURL prepends https:// when no scheme is given and strips a trailing slash
func NormalizeCanvasURL(raw string) string {
	url := strings.TrimSpace(raw)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return strings.TrimSuffix(url, "/")
}
