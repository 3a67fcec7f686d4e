package models

type QuizScoreEntry struct {
	Format string  `json:"format"`
	Score  float64 `json:"score"`
}

type QuizErrorEntry struct {
	Section *int `json:"section,omitempty"` // nil = section 0
}

type SessionRecord struct {
	Hour      *int     `json:"hour"` // nil = unknown hour
	Completed bool     `json:"completed"`
	Score     *float64 `json:"score,omitempty"`
}

// --- note format ---

type NoteFormatRequest struct {
	QuizScores []QuizScoreEntry `json:"quizScores"`
}

type NoteFormatResponse struct {
	RecommendedFormat string             `json:"recommendedFormat"`
	Confidence        float64            `json:"confidence"`
	Scores            map[string]float64 `json:"scores,omitempty"`
}

// --- attention zones ---

type AttentionZonesRequest struct {
	QuizErrors []QuizErrorEntry `json:"quizErrors"`
}

type AttentionZonesResponse struct {
	WeakSections []int       `json:"weakSections"`
	ErrorCounts  map[int]int `json:"errorCounts"`
}

// --- optimal time ---

type OptimalTimeRequest struct {
	SessionHistory []SessionRecord `json:"sessionHistory"`
}

type OptimalTimeResponse struct {
	TopHours     []int           `json:"topHours"`
	Productivity []float64       `json:"productivity"`
	AllScores    map[int]float64 `json:"allScores"`
	// UnknownHourScore is the productivity of sessions without a usable hour. It is never ranked.
	UnknownHourScore *float64 `json:"unknownHourScore,omitempty"`
}

// --- quiz difficulty ---

type QuizDifficulty string

const (
	QuizDifficultyEasy   QuizDifficulty = "easy"
	QuizDifficultyMedium QuizDifficulty = "medium"
	QuizDifficultyHard   QuizDifficulty = "hard"
)

type QuizDifficultyRequest struct {
	RecentScores []float64 `json:"recentScores"`
}

type QuizDifficultyResponse struct {
	Difficulty QuizDifficulty `json:"difficulty"`
	Adjustment int            `json:"adjustment"`
}

// --- flashcards ---

type FlashcardIntervalRequest struct {
	Difficulty         *float64 `json:"difficulty,omitempty"` // non-integer or out-of-range levels fall back to 3
	SuccessRate        *float64 `json:"successRate,omitempty"`
	ConsecutiveCorrect int      `json:"consecutiveCorrect,omitempty"`
}

type FlashcardIntervalResponse struct {
	NextReviewMs int64  `json:"nextReviewMs"`
	Difficulty   int    `json:"difficulty"`
	Label        string `json:"label"`
	Interval     string `json:"interval"`
}

type FlashcardDifficultyRequest struct {
	Difficulty         *float64 `json:"difficulty,omitempty"`
	Correct            bool     `json:"correct"`
	ConsecutiveCorrect int      `json:"consecutiveCorrect"`
}

type FlashcardDifficultyResponse struct {
	Difficulty int    `json:"difficulty"`
	Label      string `json:"label"`
}
