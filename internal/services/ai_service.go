package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studyflow/back/internal/clients"
	"github.com/studyflow/back/internal/models"
	"github.com/studyflow/back/internal/utils"
)

const (
	analysisTemperature = float32(0.3)
	chatTemperature     = float32(0.7)
	imageMaxTokens      = 1000
	defaultSubject      = "General"
)

var chatRoles = map[string]bool{
	"system":    true,
	"user":      true,
	"assistant": true,
}

// AIService shields the provider key: callers send content, never credentials
type AIService interface {
	Enabled() bool
	AnalyzeNotes(ctx context.Context, req models.AnalyzeNotesRequest) (string, error)
	Chat(ctx context.Context, req models.ChatRequest) (string, error)
	AnalyzeImage(ctx context.Context, req models.AnalyzeImageRequest) (string, error)
	GenerateOutline(ctx context.Context, req models.GenerateOutlineRequest) (string, error)
	FindConnections(ctx context.Context, req models.FindConnectionsRequest) ([]string, error)
	GenerateFlashcards(ctx context.Context, req models.GenerateFlashcardsRequest) (string, error)
}

type aiService struct {
	client  clients.LLMClient
	prompts *utils.PromptLoader
	logger  *zap.Logger
}

// NewAIService accepts a nil client; every call then fails with a configuration error
func NewAIService(client clients.LLMClient, prompts *utils.PromptLoader, logger *zap.Logger) AIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &aiService{
		client:  client,
		prompts: prompts,
		logger:  logger,
	}
}

func (s *aiService) Enabled() bool {
	return s.client != nil
}

func (s *aiService) checkConfigured() error {
	if s.client == nil {
		return clients.NewConfigurationError("AI provider is not configured: OPENAI_API_KEY is not set")
	}
	return nil
}

func (s *aiService) AnalyzeNotes(ctx context.Context, req models.AnalyzeNotesRequest) (string, error) {
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	content := joinNotes(req.Notes)
	if content == "" {
		return "", clients.NewValidationError("notes are required")
	}

	subject := subjectOrDefault(req.Subject)
	template := req.PromptTemplate
	if strings.TrimSpace(template) == "" {
		var err error
		template, err = s.prompts.LoadNotesAnalysisTemplate(subject)
		if err != nil {
			return "", err
		}
	} else if !strings.Contains(template, "{content}") {
		// no {content} slot, so append the standard notes footer
		footer, err := s.prompts.LoadRaw("notes_footer.txt")
		if err != nil {
			return "", err
		}
		template = template + "\n\n" + footer
	}

	system, err := s.prompts.LoadRaw("system_notes.txt")
	if err != nil {
		return "", err
	}

	prompt := utils.RenderPrompt(template, map[string]string{
		"subject": subject,
		"content": content,
	})

	return s.complete(ctx, "analyze-notes", clients.CompletionRequest{
		Messages: []clients.ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: analysisTemperature,
	})
}

func (s *aiService) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	if len(req.Messages) == 0 {
		return "", clients.NewValidationError("messages are required")
	}

	messages := make([]clients.ChatMessage, 0, len(req.Messages)+1)
	for i, m := range req.Messages {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if !chatRoles[role] {
			return "", clients.NewValidationError(fmt.Sprintf("message %d has invalid role %q", i, m.Role))
		}
		if strings.TrimSpace(m.Content) == "" {
			return "", clients.NewValidationError(fmt.Sprintf("message %d has empty content", i))
		}
		messages = append(messages, clients.ChatMessage{Role: role, Content: m.Content})
	}

	if messages[0].Role != "system" {
		system, err := s.prompts.LoadRaw("system_chat.txt")
		if err != nil {
			return "", err
		}
		messages = append([]clients.ChatMessage{{Role: "system", Content: system}}, messages...)
	}

	return s.complete(ctx, "chat", clients.CompletionRequest{
		Messages:    messages,
		Temperature: chatTemperature,
	})
}

func (s *aiService) AnalyzeImage(ctx context.Context, req models.AnalyzeImageRequest) (string, error) {
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		return "", clients.NewValidationError("imageUrl is required")
	}

	promptText := strings.TrimSpace(req.PromptText)
	if promptText == "" {
		var err error
		promptText, err = s.prompts.LoadRaw("analyze_image.txt")
		if err != nil {
			return "", err
		}
	}

	return s.complete(ctx, "analyze-image", clients.CompletionRequest{
		Messages:  []clients.ChatMessage{{Role: "user", Content: promptText}},
		MaxTokens: imageMaxTokens,
		ImageURL:  imageURL,
	})
}

func (s *aiService) GenerateOutline(ctx context.Context, req models.GenerateOutlineRequest) (string, error) {
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	content := joinNotes(req.Notes)
	if content == "" {
		return "", clients.NewValidationError("notes are required")
	}

	prompt, err := s.prompts.LoadOutlinePrompt(subjectOrDefault(req.Subject), content)
	if err != nil {
		return "", err
	}

	return s.complete(ctx, "generate-outline", clients.CompletionRequest{
		Messages:    []clients.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: analysisTemperature,
	})
}

func (s *aiService) FindConnections(ctx context.Context, req models.FindConnectionsRequest) ([]string, error) {
	if err := s.checkConfigured(); err != nil {
		return nil, err
	}

	content := joinNotes(req.Notes)
	if content == "" {
		return nil, clients.NewValidationError("notes are required")
	}

	prompt, err := s.prompts.LoadConnectionsPrompt(content)
	if err != nil {
		return nil, err
	}

	result, err := s.complete(ctx, "find-connections", clients.CompletionRequest{
		Messages:    []clients.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: analysisTemperature,
	})
	if err != nil {
		return nil, err
	}

	return SplitLines(result), nil
}

func (s *aiService) GenerateFlashcards(ctx context.Context, req models.GenerateFlashcardsRequest) (string, error) {
	if err := s.checkConfigured(); err != nil {
		return "", err
	}

	if strings.TrimSpace(req.Content) == "" {
		return "", clients.NewValidationError("content is required")
	}

	prompt, err := s.prompts.LoadFlashcardsPrompt(req.Content)
	if err != nil {
		return "", err
	}

	return s.complete(ctx, "generate-flashcards", clients.CompletionRequest{
		Messages:    []clients.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: analysisTemperature,
	})
}

func (s *aiService) complete(ctx context.Context, operation string, req clients.CompletionRequest) (string, error) {
	start := time.Now()
	result, err := s.client.Complete(ctx, req)
	if err != nil {
		s.logger.Error("ai completion failed",
			zap.String("operation", operation),
			zap.String("kind", clients.TypeOf(err).String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%s failed: %w", operation, err)
	}

	s.logger.Info("ai completion succeeded",
		zap.String("operation", operation),
		zap.Int("length", len(result)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// SplitLines splits provider output into trimmed, non-empty lines
func SplitLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func joinNotes(notes []models.Note) string {
	parts := make([]string, 0, len(notes))
	for _, note := range notes {
		if content := strings.TrimSpace(note.Content); content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func subjectOrDefault(subject string) string {
	if s := strings.TrimSpace(subject); s != "" {
		return s
	}
	return defaultSubject
}
