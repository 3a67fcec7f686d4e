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

type AIHandler struct {
	aiService services.AIService
	logger    *zap.Logger
}

func NewAIHandler(aiService services.AIService, logger *zap.Logger) *AIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIHandler{
		aiService: aiService,
		logger:    logger,
	}
}

func (h *AIHandler) AnalyzeNotes(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeNotesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.aiService.AnalyzeNotes(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "analyze-notes", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, models.AnalyzeNotesResponse{OK: true, Result: result})
}

func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	message, err := h.aiService.Chat(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "chat", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, models.ChatResponse{OK: true, Message: message})
}

func (h *AIHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text, err := h.aiService.AnalyzeImage(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "analyze-image", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, models.AnalyzeImageResponse{OK: true, Text: text})
}

func (h *AIHandler) GenerateOutline(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateOutlineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	outline, err := h.aiService.GenerateOutline(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "generate-outline", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, models.GenerateOutlineResponse{OK: true, Outline: outline})
}

func (h *AIHandler) FindConnections(w http.ResponseWriter, r *http.Request) {
	var req models.FindConnectionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	connections, err := h.aiService.FindConnections(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "find-connections", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, models.FindConnectionsResponse{OK: true, Connections: connections})
}

func (h *AIHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateFlashcardsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	flashcards, err := h.aiService.GenerateFlashcards(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "generate-flashcards", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, models.GenerateFlashcardsResponse{OK: true, Flashcards: flashcards})
}

// writeError maps validation failures to 400; configuration and provider failures are 500
func (h *AIHandler) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if clients.IsValidationError(err) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Warn("ai request failed",
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.String("operation", operation),
		zap.String("kind", clients.TypeOf(err).String()),
		zap.Error(err),
	)
	utils.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
}
