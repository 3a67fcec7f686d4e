package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/back/internal/services"
)

func newPredictHandler() *PredictHandler {
	return NewPredictHandler(services.NewRecommendationService(), services.NewIntervalService())
}

func doRequest(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPredictHandler_InvalidJSON(t *testing.T) {
	h := newPredictHandler()

	for name, handler := range map[string]http.HandlerFunc{
		"note-format":          h.NoteFormat,
		"attention-zones":      h.AttentionZones,
		"optimal-time":         h.OptimalTime,
		"quiz-difficulty":      h.QuizDifficulty,
		"flashcard-interval":   h.FlashcardInterval,
		"flashcard-difficulty": h.FlashcardDifficulty,
	} {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(handler, `{"broken": `)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, "Invalid JSON", body["error"])
		})
	}
}

func TestPredictHandler_NoteFormat(t *testing.T) {
	rec := doRequest(newPredictHandler().NoteFormat,
		`{"quizScores": [{"format": "outline", "score": 90}, {"format": "text", "score": 70}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Equal(t, "outline", body["recommendedFormat"])
	assert.InDelta(t, 0.9, body["confidence"], 1e-9)
}

func TestPredictHandler_NoteFormatEmptyBody(t *testing.T) {
	rec := doRequest(newPredictHandler().NoteFormat, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recommendedFormat": "text", "confidence": 0.5}`, rec.Body.String())
}

func TestPredictHandler_NoteFormatRequiresFormat(t *testing.T) {
	rec := doRequest(newPredictHandler().NoteFormat, `{"quizScores": [{"score": 90}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "quizScores[0].format is required", decodeBody(t, rec)["error"])
}

func TestPredictHandler_AttentionZones(t *testing.T) {
	rec := doRequest(newPredictHandler().AttentionZones,
		`{"quizErrors": [{"section": 2}, {"section": 2}, {}, {"section": 5}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"weakSections": [2], "errorCounts": {"2": 2, "0": 1, "5": 1}}`, rec.Body.String())
}

func TestPredictHandler_OptimalTime(t *testing.T) {
	rec := doRequest(newPredictHandler().OptimalTime, `{"sessionHistory": [
		{"hour": 9, "completed": true, "score": 80},
		{"hour": 9, "completed": true, "score": 90},
		{"hour": 9, "completed": false},
		{"hour": 14, "completed": true, "score": 100}
	]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{float64(14), float64(9)}, body["topHours"])
	assert.NotContains(t, body, "unknownHourScore")
}

func TestPredictHandler_QuizDifficulty(t *testing.T) {
	rec := doRequest(newPredictHandler().QuizDifficulty, `{"recentScores": [50, 55]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"difficulty": "easy", "adjustment": -1}`, rec.Body.String())
}

func TestPredictHandler_FlashcardInterval(t *testing.T) {
	rec := doRequest(newPredictHandler().FlashcardInterval, `{"difficulty": 5, "successRate": 0.3}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"nextReviewMs": 423360000, "difficulty": 5, "label": "Very Hard", "interval": "4 days"}`, rec.Body.String())
}

func TestPredictHandler_FlashcardDifficulty(t *testing.T) {
	rec := doRequest(newPredictHandler().FlashcardDifficulty, `{"difficulty": 2, "correct": true, "consecutiveCorrect": 3}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"difficulty": 1, "label": "Very Easy"}`, rec.Body.String())
}

func TestPredictHandler_OverflowingScoresAre400(t *testing.T) {
	h := newPredictHandler()

	rec := doRequest(h.QuizDifficulty, `{"recentScores": [1e308, 1e308]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "recentScores are too large to average", decodeBody(t, rec)["error"])

	rec = doRequest(h.NoteFormat, `{"quizScores": [{"format": "text", "score": 1e308}, {"format": "text", "score": 1e308}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h.OptimalTime, `{"sessionHistory": [{"hour": 9, "completed": true, "score": 1e308}, {"hour": 9, "completed": true, "score": 1e308}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictHandler_FractionalDifficultyFallsBack(t *testing.T) {
	rec := doRequest(newPredictHandler().FlashcardInterval, `{"difficulty": 2.5}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"nextReviewMs": 86400000, "difficulty": 3, "label": "Medium", "interval": "1 day"}`, rec.Body.String())
}
