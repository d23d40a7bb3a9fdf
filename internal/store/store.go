package store

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique key
	// (duplicate username, favorite pair, answer pair, ...).
	ErrDuplicate = errors.New("duplicate entry")
)

// AnswerStats are the raw aggregate numbers behind GET /answer-records/stats.
type AnswerStats struct {
	TotalAnswers     int
	CorrectAnswers   int
	IncorrectAnswers int
	AverageTimeSpent float64
}

// PracticeCounts is the practice/answer half of the analytics overview.
type PracticeCounts struct {
	TotalPractice int
	TotalAnswered int
	TotalCorrect  int
}

// ReviewCounts is the wrong-question/favorite half of the analytics overview.
type ReviewCounts struct {
	TotalWrongQuestions int
	TotalFavorites      int
}

// DailyActivity is one day with at least one answered question. Days with
// no activity produce no row.
type DailyActivity struct {
	Date          string // YYYY-MM-DD
	PracticeCount int
	QuestionCount int
	CorrectCount  int
}

// WeeklySummary is one week bucket of practice activity.
type WeeklySummary struct {
	Week           string // "2026-35"
	TotalPractice  int
	TotalQuestions int
	CorrectRatio   float64 // 0..1
}

// KnowledgePoint is per-exam-set mastery for one user.
type KnowledgePoint struct {
	Name           string
	TotalQuestions int
	CorrectCount   int
	MasteryLevel   float64 // 0..1
}

// QuestionTypeStat is per-question-type accuracy for one user.
type QuestionTypeStat struct {
	Type         string
	Count        int
	CorrectCount int
	AccuracyRate float64 // 0..1
}
