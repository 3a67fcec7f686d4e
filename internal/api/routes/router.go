package routes

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/studyflow/back/internal/api/handlers"
	"github.com/studyflow/back/internal/api/middleware"
	"github.com/studyflow/back/internal/utils"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Predict *handlers.PredictHandler
	Canvas  *handlers.CanvasHandler
	AI      *handlers.AIHandler
	Health  *handlers.HealthHandler
}

// Router sets up all the routes for the application
func NewRouter(h Handlers, allowedOrigin string, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/", onlyRoot(h.Health.Health))
	mux.HandleFunc("/health", allow(http.MethodGet, h.Health.Health))

	// Statistics endpoints
	mux.HandleFunc("/predict/note-format", allow(http.MethodPost, h.Predict.NoteFormat))
	mux.HandleFunc("/predict/attention-zones", allow(http.MethodPost, h.Predict.AttentionZones))
	mux.HandleFunc("/predict/optimal-time", allow(http.MethodPost, h.Predict.OptimalTime))
	mux.HandleFunc("/predict/quiz-difficulty", allow(http.MethodPost, h.Predict.QuizDifficulty))
	mux.HandleFunc("/predict/flashcard-interval", allow(http.MethodPost, h.Predict.FlashcardInterval))
	mux.HandleFunc("/predict/flashcard-difficulty", allow(http.MethodPost, h.Predict.FlashcardDifficulty))

	// LMS proxy
	mux.HandleFunc("/canvas/proxy", allow(http.MethodPost, h.Canvas.Proxy))

	// LLM proxy endpoints
	mux.HandleFunc("/ai/analyze-notes", allow(http.MethodPost, h.AI.AnalyzeNotes))
	mux.HandleFunc("/ai/chat", allow(http.MethodPost, h.AI.Chat))
	mux.HandleFunc("/ai/analyze-image", allow(http.MethodPost, h.AI.AnalyzeImage))
	mux.HandleFunc("/ai/generate-outline", allow(http.MethodPost, h.AI.GenerateOutline))
	mux.HandleFunc("/ai/find-connections", allow(http.MethodPost, h.AI.FindConnections))
	mux.HandleFunc("/ai/generate-flashcards", allow(http.MethodPost, h.AI.GenerateFlashcards))

	// outermost first: recovery wraps logging wraps CORS
	var handler http.Handler = mux
	handler = middleware.CORSMiddleware(allowedOrigin)(handler)
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	return handler
}

func allow(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case method, http.MethodOptions:
			next(w, r)
		default:
			utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func onlyRoot(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found")
			return
		}
		allow(http.MethodGet, next)(w, r)
	}
}
