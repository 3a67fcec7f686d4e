package services

import (
	"fmt"
	"math"

	"github.com/studyflow/back/internal/models"
)

const (
	DefaultCardDifficulty = 3
	DefaultSuccessRate    = 0.5

	minCardDifficulty    = 1
	maxCardDifficulty    = 5
	streakBonusThreshold = 3

	hourMs   = int64(3600000)
	minuteMs = int64(60000)
)

// baseIntervals are keyed by difficulty level, in milliseconds
var baseIntervals = map[int]int64{
	1: 3600000,   // 1 hour
	2: 21600000,  // 6 hours
	3: 86400000,  // 1 day
	4: 259200000, // 3 days
	5: 604800000, // 7 days
}

var difficultyLabels = map[int]string{
	1: "Very Easy",
	2: "Easy",
	3: "Medium",
	4: "Hard",
	5: "Very Hard",
}

// IntervalService computes spaced-repetition review delays
type IntervalService interface {
	NextInterval(req models.FlashcardIntervalRequest) models.FlashcardIntervalResponse
	AdjustDifficulty(req models.FlashcardDifficultyRequest) models.FlashcardDifficultyResponse
}

type intervalService struct{}

func NewIntervalService() IntervalService {
	return &intervalService{}
}

func (s *intervalService) NextInterval(req models.FlashcardIntervalRequest) models.FlashcardIntervalResponse {
	difficulty := difficultyLevel(req.Difficulty)
	successRate := DefaultSuccessRate
	if req.SuccessRate != nil {
		successRate = *req.SuccessRate
	}

	ms, effective := ComputeNextInterval(difficulty, successRate)
	if req.ConsecutiveCorrect >= streakBonusThreshold {
		ms = ms * 12 / 10
	}

	return models.FlashcardIntervalResponse{
		NextReviewMs: ms,
		Difficulty:   effective,
		Label:        DifficultyLabel(effective),
		Interval:     FormatInterval(ms),
	}
}

func (s *intervalService) AdjustDifficulty(req models.FlashcardDifficultyRequest) models.FlashcardDifficultyResponse {
	next := AdjustDifficulty(difficultyLevel(req.Difficulty), req.Correct, req.ConsecutiveCorrect)

	return models.FlashcardDifficultyResponse{
		Difficulty: next,
		Label:      DifficultyLabel(next),
	}
}

// ComputeNextInterval returns the review delay in milliseconds and the difficulty level it was computed for.
// Unknown difficulty levels use the level-3 base.
func ComputeNextInterval(difficulty int, successRate float64) (int64, int) {
	difficulty = normalizeDifficulty(difficulty)
	interval := baseIntervals[difficulty]

	// integer scaling keeps the floor exact
	switch {
	case successRate > 0.8:
		interval = interval * 15 / 10
	case successRate < 0.5:
		interval = interval * 7 / 10
	}

	return interval, difficulty
}

// AdjustDifficulty eases a card after a streak of correct answers and hardens it after a miss
func AdjustDifficulty(difficulty int, correct bool, consecutiveCorrect int) int {
	difficulty = normalizeDifficulty(difficulty)

	if !correct {
		return min(maxCardDifficulty, difficulty+1)
	}
	if consecutiveCorrect >= 2 {
		return max(minCardDifficulty, difficulty-1)
	}
	return difficulty
}

// difficultyLevel maps a wire value to a level. Missing, fractional and out-of-range values become 3.
func difficultyLevel(value *float64) int {
	if value == nil {
		return DefaultCardDifficulty
	}
	v := *value
	if v != math.Trunc(v) || v < minCardDifficulty || v > maxCardDifficulty {
		return DefaultCardDifficulty
	}
	return int(v)
}

func normalizeDifficulty(difficulty int) int {
	if _, ok := baseIntervals[difficulty]; !ok {
		return DefaultCardDifficulty
	}
	return difficulty
}

// DifficultyLabel returns a display label, "Medium" for unknown levels
func DifficultyLabel(difficulty int) string {
	if label, ok := difficultyLabels[difficulty]; ok {
		return label
	}
	return difficultyLabels[DefaultCardDifficulty]
}

// FormatInterval renders a delay as whole days, hours or minutes
func FormatInterval(ms int64) string {
	hours := ms / hourMs
	days := hours / 24

	switch {
	case days >= 1:
		return pluralize(days, "day")
	case hours >= 1:
		return pluralize(hours, "hour")
	default:
		return pluralize(ms/minuteMs, "minute")
	}
}

func pluralize(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
