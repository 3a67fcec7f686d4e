package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/studyflow/back/internal/clients"
	"github.com/studyflow/back/internal/models"
	"github.com/studyflow/back/internal/services"
	"github.com/studyflow/back/internal/utils"
)

type PredictHandler struct {
	recommendationService services.RecommendationService
	intervalService       services.IntervalService
}

func NewPredictHandler(recommendationService services.RecommendationService, intervalService services.IntervalService) *PredictHandler {
	return &PredictHandler{
		recommendationService: recommendationService,
		intervalService:       intervalService,
	}
}

func (h *PredictHandler) NoteFormat(w http.ResponseWriter, r *http.Request) {
	var req models.NoteFormatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for i, entry := range req.QuizScores {
		if strings.TrimSpace(entry.Format) == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("quizScores[%d].format is required", i))
			return
		}
	}

	resp, err := h.recommendationService.RecommendNoteFormat(req.QuizScores)
	if err != nil {
		writePredictError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

func (h *PredictHandler) AttentionZones(w http.ResponseWriter, r *http.Request) {
	var req models.AttentionZonesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, h.recommendationService.IdentifyWeakSections(req.QuizErrors))
}

func (h *PredictHandler) OptimalTime(w http.ResponseWriter, r *http.Request) {
	var req models.OptimalTimeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.recommendationService.RecommendOptimalHours(req.SessionHistory)
	if err != nil {
		writePredictError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

func (h *PredictHandler) QuizDifficulty(w http.ResponseWriter, r *http.Request) {
	var req models.QuizDifficultyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.recommendationService.ClassifyQuizDifficulty(req.RecentScores)
	if err != nil {
		writePredictError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

func (h *PredictHandler) FlashcardInterval(w http.ResponseWriter, r *http.Request) {
	var req models.FlashcardIntervalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, h.intervalService.NextInterval(req))
}

func (h *PredictHandler) FlashcardDifficulty(w http.ResponseWriter, r *http.Request) {
	var req models.FlashcardDifficultyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, h.intervalService.AdjustDifficulty(req))
}

func writePredictError(w http.ResponseWriter, err error) {
	if clients.IsValidationError(err) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
}
