package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/studyflow/back/internal/clients"
	"github.com/studyflow/back/internal/models"
)

const (
	defaultNoteFormat    = "text"
	defaultConfidence    = 0.5
	weakSectionThreshold = 2
	defaultSessionScore  = 75.0
	completionWeight     = 0.6
	scoreWeight          = 0.4
	maxTopHours          = 3
	recentScoreWindow    = 10
	hardQuizThreshold    = 85.0
	easyQuizThreshold    = 60.0
	minSchedulableHour   = 0
	maxSchedulableHour   = 23
)

// RecommendationService computes study recommendations from client-supplied activity.
// Every method is pure and keeps no state between calls.
type RecommendationService interface {
	RecommendNoteFormat(entries []models.QuizScoreEntry) (models.NoteFormatResponse, error)
	IdentifyWeakSections(errors []models.QuizErrorEntry) models.AttentionZonesResponse
	RecommendOptimalHours(sessions []models.SessionRecord) (models.OptimalTimeResponse, error)
	ClassifyQuizDifficulty(recentScores []float64) (models.QuizDifficultyResponse, error)
}

type recommendationService struct{}

func NewRecommendationService() RecommendationService {
	return &recommendationService{}
}

type formatAggregate struct {
	sum   float64
	count int
}

// RecommendNoteFormat picks the format with the highest mean score.
// Ties go to the format seen first in the input.
func (s *recommendationService) RecommendNoteFormat(entries []models.QuizScoreEntry) (models.NoteFormatResponse, error) {
	if len(entries) == 0 {
		return models.NoteFormatResponse{
			RecommendedFormat: defaultNoteFormat,
			Confidence:        defaultConfidence,
		}, nil
	}

	order := make([]string, 0)
	aggregates := make(map[string]*formatAggregate)
	for _, entry := range entries {
		agg, exists := aggregates[entry.Format]
		if !exists {
			agg = &formatAggregate{}
			aggregates[entry.Format] = agg
			order = append(order, entry.Format)
		}
		agg.sum += entry.Score
		agg.count++
	}

	scores := make(map[string]float64, len(order))
	best := ""
	bestAvg := 0.0
	for i, format := range order {
		agg := aggregates[format]
		avg := agg.sum / float64(agg.count)
		if !isFinite(avg) {
			return models.NoteFormatResponse{}, clients.NewValidationError(
				fmt.Sprintf("quizScores for format %q are too large to average", format))
		}
		scores[format] = avg
		if i == 0 || avg > bestAvg {
			best = format
			bestAvg = avg
		}
	}

	return models.NoteFormatResponse{
		RecommendedFormat: best,
		Confidence:        bestAvg / 100,
		Scores:            scores,
	}, nil
}

// IdentifyWeakSections returns sections with at least two errors, in order of first occurrence
func (s *recommendationService) IdentifyWeakSections(errors []models.QuizErrorEntry) models.AttentionZonesResponse {
	order := make([]int, 0)
	counts := make(map[int]int)
	for _, entry := range errors {
		section := 0
		if entry.Section != nil {
			section = *entry.Section
		}
		if _, seen := counts[section]; !seen {
			order = append(order, section)
		}
		counts[section]++
	}

	weak := make([]int, 0)
	for _, section := range order {
		if counts[section] >= weakSectionThreshold {
			weak = append(weak, section)
		}
	}

	return models.AttentionZonesResponse{
		WeakSections: weak,
		ErrorCounts:  counts,
	}
}

type hourAggregate struct {
	total     int
	completed int
	scoreSum  float64
	scored    int
}

func (a *hourAggregate) add(session models.SessionRecord) {
	a.total++
	if !session.Completed {
		return
	}
	a.completed++
	if session.Score != nil {
		a.scoreSum += *session.Score
		a.scored++
	}
}

func (a *hourAggregate) productivity() float64 {
	completionRate := float64(a.completed) / float64(a.total)
	avgScore := defaultSessionScore
	if a.scored > 0 {
		avgScore = a.scoreSum / float64(a.scored)
	}
	return completionRate*completionWeight + avgScore/100*scoreWeight
}

// RecommendOptimalHours ranks hours by productivity, highest first, ties by ascending hour.
// Sessions without a usable hour are scored separately and never ranked.
func (s *recommendationService) RecommendOptimalHours(sessions []models.SessionRecord) (models.OptimalTimeResponse, error) {
	hours := make(map[int]*hourAggregate)
	var unknown *hourAggregate

	for _, session := range sessions {
		if session.Hour == nil || *session.Hour < minSchedulableHour || *session.Hour > maxSchedulableHour {
			if unknown == nil {
				unknown = &hourAggregate{}
			}
			unknown.add(session)
			continue
		}

		agg, exists := hours[*session.Hour]
		if !exists {
			agg = &hourAggregate{}
			hours[*session.Hour] = agg
		}
		agg.add(session)
	}

	allScores := make(map[int]float64, len(hours))
	ranked := make([]int, 0, len(hours))
	for hour, agg := range hours {
		score := agg.productivity()
		if !isFinite(score) {
			return models.OptimalTimeResponse{}, clients.NewValidationError(
				fmt.Sprintf("sessionHistory scores for hour %d are too large to average", hour))
		}
		allScores[hour] = score
		ranked = append(ranked, hour)
	}

	sort.Slice(ranked, func(i, j int) bool {
		si, sj := allScores[ranked[i]], allScores[ranked[j]]
		if si == sj {
			return ranked[i] < ranked[j]
		}
		return si > sj
	})

	if len(ranked) > maxTopHours {
		ranked = ranked[:maxTopHours]
	}

	productivity := make([]float64, len(ranked))
	for i, hour := range ranked {
		productivity[i] = allScores[hour]
	}

	response := models.OptimalTimeResponse{
		TopHours:     ranked,
		Productivity: productivity,
		AllScores:    allScores,
	}
	if unknown != nil {
		score := unknown.productivity()
		if !isFinite(score) {
			return models.OptimalTimeResponse{}, clients.NewValidationError(
				"sessionHistory scores without an hour are too large to average")
		}
		response.UnknownHourScore = &score
	}

	return response, nil
}

// ClassifyQuizDifficulty uses the mean of the last ten scores with strict thresholds
func (s *recommendationService) ClassifyQuizDifficulty(recentScores []float64) (models.QuizDifficultyResponse, error) {
	if len(recentScores) > recentScoreWindow {
		recentScores = recentScores[len(recentScores)-recentScoreWindow:]
	}

	if len(recentScores) == 0 {
		return models.QuizDifficultyResponse{Difficulty: models.QuizDifficultyMedium, Adjustment: 0}, nil
	}

	sum := 0.0
	for _, score := range recentScores {
		sum += score
	}
	avg := sum / float64(len(recentScores))
	if !isFinite(avg) {
		return models.QuizDifficultyResponse{}, clients.NewValidationError("recentScores are too large to average")
	}

	switch {
	case avg > hardQuizThreshold:
		return models.QuizDifficultyResponse{Difficulty: models.QuizDifficultyHard, Adjustment: 1}, nil
	case avg < easyQuizThreshold:
		return models.QuizDifficultyResponse{Difficulty: models.QuizDifficultyEasy, Adjustment: -1}, nil
	default:
		return models.QuizDifficultyResponse{Difficulty: models.QuizDifficultyMedium, Adjustment: 0}, nil
	}
}

// isFinite rejects sums that overflowed to ±Inf or NaN
func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
