package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/studyflow/back/internal/api/middleware"
	"github.com/studyflow/back/internal/clients"
	"github.com/studyflow/back/internal/models"
	"github.com/studyflow/back/internal/services"
	"github.com/studyflow/back/internal/utils"
)

type CanvasHandler struct {
	canvasService services.CanvasService
	logger        *zap.Logger
}

func NewCanvasHandler(canvasService services.CanvasService, logger *zap.Logger) *CanvasHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CanvasHandler{
		canvasService: canvasService,
		logger:        logger,
	}
}

// Proxy answers 200 for any response Canvas actually sent, including 4xx/5xx.
// Only local failures change the HTTP status: 400 bad input, 504 timeout, 500 otherwise.
func (h *CanvasHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	var req models.CanvasProxyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.canvasService.Proxy(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch clients.TypeOf(err) {
		case clients.ErrorTypeValidation:
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		case clients.ErrorTypeTimeout:
			status = http.StatusGatewayTimeout
		}

		h.logger.Warn("canvas proxy failed",
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.String("kind", clients.TypeOf(err).String()),
			zap.Error(err),
		)

		message := err.Error()
		utils.WriteJSONResponse(w, status, models.CanvasProxyResponse{
			Data:   nil,
			Status: status,
			OK:     false,
			Error:  &message,
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}
