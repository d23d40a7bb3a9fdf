package service

import (
	"context"
	"log/slog"

	"github.com/db-engineer-practice/backend/internal/store"
)

// AnalyticsStore is the read-only aggregate slice of the gateway.
type AnalyticsStore interface {
	PracticeAnswerCounts(ctx context.Context, userID int64) (store.PracticeCounts, error)
	ReviewCounts(ctx context.Context, userID int64) (store.ReviewCounts, error)
	DailyActivity(ctx context.Context, userID int64, days int) ([]store.DailyActivity, error)
	WeeklySummary(ctx context.Context, userID int64, weeks int) ([]store.WeeklySummary, error)
	KnowledgePoints(ctx context.Context, userID int64) ([]store.KnowledgePoint, error)
	QuestionTypeStats(ctx context.Context, userID int64) ([]store.QuestionTypeStat, error)
}

// AnalyticsService computes per-user learning reports. It only reads.
type AnalyticsService struct {
	store  AnalyticsStore
	logger *slog.Logger
}

func NewAnalyticsService(s AnalyticsStore, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{store: s, logger: logger}
}

const (
	dailyActivityDays  = 14
	weeklySummaryWeeks = 8
)

// Overview is the headline report. AccuracyRate is a 0..100 percentage;
// the progress report below uses 0..1 fractions instead — the front end
// depends on both conventions, so they stay as they are.
type Overview struct {
	TotalPractice       int     `json:"total_practice"`
	TotalAnswered       int     `json:"total_answered"`
	TotalCorrect        int     `json:"total_correct"`
	AccuracyRate        float64 `json:"accuracy_rate"`
	TotalWrongQuestions int     `json:"total_wrong_questions"`
	TotalFavorites      int     `json:"total_favorites"`
}

// GetOverview merges two independent aggregate queries. Either may report
// zero activity; a user with no history gets an all-zero overview.
func (as *AnalyticsService) GetOverview(ctx context.Context, userID int64) (*Overview, error) {
	practiceCounts, err := as.store.PracticeAnswerCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviewCounts, err := as.store.ReviewCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		TotalPractice:       practiceCounts.TotalPractice,
		TotalAnswered:       practiceCounts.TotalAnswered,
		TotalCorrect:        practiceCounts.TotalCorrect,
		TotalWrongQuestions: reviewCounts.TotalWrongQuestions,
		TotalFavorites:      reviewCounts.TotalFavorites,
	}
	if practiceCounts.TotalAnswered > 0 {
		overview.AccuracyRate = float64(practiceCounts.TotalCorrect) / float64(practiceCounts.TotalAnswered) * 100
	}
	return overview, nil
}

type DailyActivity struct {
	Date          string `json:"date"`
	PracticeCount int    `json:"practice_count"`
	QuestionCount int    `json:"question_count"`
	CorrectCount  int    `json:"correct_count"`
}

type WeeklySummary struct {
	Week           string  `json:"week"`
	TotalPractice  int     `json:"total_practice"`
	TotalQuestions int     `json:"total_questions"`
	CorrectRatio   float64 `json:"correct_ratio"` // 0..1
}

type Progress struct {
	DailyActivity []DailyActivity `json:"daily_activity"`
	WeeklySummary []WeeklySummary `json:"weekly_summary"`
}

// GetProgress reports the last 14 active days and 8 active week buckets.
// Days with no activity are absent from the series, not zero-filled.
func (as *AnalyticsService) GetProgress(ctx context.Context, userID int64) (*Progress, error) {
	daily, err := as.store.DailyActivity(ctx, userID, dailyActivityDays)
	if err != nil {
		return nil, err
	}
	weekly, err := as.store.WeeklySummary(ctx, userID, weeklySummaryWeeks)
	if err != nil {
		return nil, err
	}

	progress := &Progress{
		DailyActivity: make([]DailyActivity, len(daily)),
		WeeklySummary: make([]WeeklySummary, len(weekly)),
	}
	for i, d := range daily {
		progress.DailyActivity[i] = DailyActivity(d)
	}
	for i, w := range weekly {
		progress.WeeklySummary[i] = WeeklySummary(w)
	}
	return progress, nil
}

type KnowledgePoint struct {
	Name           string  `json:"name"`
	TotalQuestions int     `json:"total_questions"`
	CorrectCount   int     `json:"correct_count"`
	MasteryLevel   float64 `json:"mastery_level"` // 0..1
}

type KnowledgePoints struct {
	KnowledgePoints []KnowledgePoint `json:"knowledge_points"`
}

// GetKnowledgePoints reports mastery per exam set the user has attempted.
func (as *AnalyticsService) GetKnowledgePoints(ctx context.Context, userID int64) (*KnowledgePoints, error) {
	rows, err := as.store.KnowledgePoints(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &KnowledgePoints{KnowledgePoints: make([]KnowledgePoint, len(rows))}
	for i, r := range rows {
		out.KnowledgePoints[i] = KnowledgePoint(r)
	}
	return out, nil
}

type QuestionTypeStat struct {
	Type         string  `json:"type"`
	Count        int     `json:"count"`
	CorrectCount int     `json:"correct_count"`
	AccuracyRate float64 `json:"accuracy_rate"` // 0..1
}

type QuestionTypes struct {
	QuestionTypes []QuestionTypeStat `json:"question_types"`
}

// GetQuestionTypes reports per-type answer accuracy.
func (as *AnalyticsService) GetQuestionTypes(ctx context.Context, userID int64) (*QuestionTypes, error) {
	rows, err := as.store.QuestionTypeStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &QuestionTypes{QuestionTypes: make([]QuestionTypeStat, len(rows))}
	for i, r := range rows {
		out.QuestionTypes[i] = QuestionTypeStat(r)
	}
	return out, nil
}
