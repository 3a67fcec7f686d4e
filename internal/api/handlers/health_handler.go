package handlers

import (
	"net/http"

	"github.com/studyflow/back/internal/utils"
)

type HealthHandler struct {
	aiConfigured bool
}

func NewHealthHandler(aiConfigured bool) *HealthHandler {
	return &HealthHandler{aiConfigured: aiConfigured}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":       "ok",
		"message":      "Studyflow Backend Server is running",
		"service":      "studyflow-backend",
		"version":      "1.0.0",
		"aiConfigured": h.aiConfigured,
	}

	utils.WriteJSONResponse(w, http.StatusOK, response)
}
