package service_test

import (
	"context"
	"testing"

	"github.com/db-engineer-practice/backend/internal/service"
	"github.com/db-engineer-practice/backend/internal/store"
)

// fakeAnalyticsStore returns canned aggregate rows; the SQL behind the
// real aggregates is exercised against the schema, not here.
type fakeAnalyticsStore struct {
	practice store.PracticeCounts
	review   store.ReviewCounts
	daily    []store.DailyActivity
	weekly   []store.WeeklySummary
	points   []store.KnowledgePoint
	types    []store.QuestionTypeStat
}

func (f *fakeAnalyticsStore) PracticeAnswerCounts(context.Context, int64) (store.PracticeCounts, error) {
	return f.practice, nil
}

func (f *fakeAnalyticsStore) ReviewCounts(context.Context, int64) (store.ReviewCounts, error) {
	return f.review, nil
}

func (f *fakeAnalyticsStore) DailyActivity(context.Context, int64, int) ([]store.DailyActivity, error) {
	return f.daily, nil
}

func (f *fakeAnalyticsStore) WeeklySummary(context.Context, int64, int) ([]store.WeeklySummary, error) {
	return f.weekly, nil
}

func (f *fakeAnalyticsStore) KnowledgePoints(context.Context, int64) ([]store.KnowledgePoint, error) {
	return f.points, nil
}

func (f *fakeAnalyticsStore) QuestionTypeStats(context.Context, int64) ([]store.QuestionTypeStat, error) {
	return f.types, nil
}

func TestGetOverviewEmptyUser(t *testing.T) {
	as := service.NewAnalyticsService(&fakeAnalyticsStore{}, discardLogger())

	overview, err := as.GetOverview(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if *overview != (service.Overview{}) {
		t.Errorf("expected all-zero overview, got %+v", overview)
	}
}

func TestGetOverviewAccuracyIsPercentage(t *testing.T) {
	fas := &fakeAnalyticsStore{
		practice: store.PracticeCounts{TotalPractice: 3, TotalAnswered: 8, TotalCorrect: 6},
		review:   store.ReviewCounts{TotalWrongQuestions: 2, TotalFavorites: 5},
	}
	as := service.NewAnalyticsService(fas, discardLogger())

	overview, err := as.GetOverview(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if overview.AccuracyRate != 75 {
		t.Errorf("accuracy = %v, want 75", overview.AccuracyRate)
	}
	if overview.TotalPractice != 3 || overview.TotalWrongQuestions != 2 || overview.TotalFavorites != 5 {
		t.Errorf("overview = %+v", overview)
	}
}

func TestGetProgressKeepsSparseSeries(t *testing.T) {
	fas := &fakeAnalyticsStore{
		daily: []store.DailyActivity{
			{Date: "2026-08-27", PracticeCount: 1, QuestionCount: 10, CorrectCount: 7},
			{Date: "2026-08-24", PracticeCount: 2, QuestionCount: 5, CorrectCount: 5},
		},
		weekly: []store.WeeklySummary{
			{Week: "2026-34", TotalPractice: 3, TotalQuestions: 15, CorrectRatio: 0.8},
		},
	}
	as := service.NewAnalyticsService(fas, discardLogger())

	progress, err := as.GetProgress(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	// Inactive days stay absent; the series is not zero-filled.
	if len(progress.DailyActivity) != 2 {
		t.Fatalf("got %d daily entries, want 2", len(progress.DailyActivity))
	}
	if progress.DailyActivity[0].Date != "2026-08-27" {
		t.Errorf("daily[0] = %+v", progress.DailyActivity[0])
	}
	if len(progress.WeeklySummary) != 1 || progress.WeeklySummary[0].CorrectRatio != 0.8 {
		t.Errorf("weekly = %+v", progress.WeeklySummary)
	}
}

func TestGetKnowledgePointsAndTypes(t *testing.T) {
	fas := &fakeAnalyticsStore{
		points: []store.KnowledgePoint{
			{Name: "2025 Spring", TotalQuestions: 10, CorrectCount: 9, MasteryLevel: 0.9},
		},
		types: []store.QuestionTypeStat{
			{Type: "single_choice", Count: 12, CorrectCount: 9, AccuracyRate: 0.75},
			{Type: "multiple_choice", Count: 4, CorrectCount: 1, AccuracyRate: 0.25},
		},
	}
	as := service.NewAnalyticsService(fas, discardLogger())
	ctx := context.Background()

	points, err := as.GetKnowledgePoints(ctx, 10)
	if err != nil {
		t.Fatalf("GetKnowledgePoints: %v", err)
	}
	if len(points.KnowledgePoints) != 1 || points.KnowledgePoints[0].MasteryLevel != 0.9 {
		t.Errorf("points = %+v", points.KnowledgePoints)
	}

	types, err := as.GetQuestionTypes(ctx, 10)
	if err != nil {
		t.Fatalf("GetQuestionTypes: %v", err)
	}
	if len(types.QuestionTypes) != 2 || types.QuestionTypes[1].AccuracyRate != 0.25 {
		t.Errorf("types = %+v", types.QuestionTypes)
	}
}
