package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/db-engineer-practice/backend/internal/domain/question"
	"github.com/db-engineer-practice/backend/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateSessionFromExamSet(t *testing.T) {
	fs := newFakeStore()
	fs.seedExamSet(1, 3)
	ps := service.NewPracticeService(fs, discardLogger())

	examSetID := int64(1)
	sess, questions, err := ps.CreateSession(context.Background(), service.CreateSessionInput{
		UserID: 10, ExamSetID: &examSetID,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	if !sess.IsOpen() {
		t.Error("new session should be open")
	}
	if sess.UserID != 10 {
		t.Errorf("session user = %d, want 10", sess.UserID)
	}
}

func TestCreateSessionFromQuestionIDs(t *testing.T) {
	fs := newFakeStore()
	ids := fs.seedExamSet(1, 3)
	ps := service.NewPracticeService(fs, discardLogger())

	_, questions, err := ps.CreateSession(context.Background(), service.CreateSessionInput{
		UserID: 10, QuestionIDs: ids[:2],
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
}

func TestCreateSessionValidation(t *testing.T) {
	fs := newFakeStore()
	fs.seedExamSet(1, 2)
	fs.examSets[2] = question.ExamSet{ID: 2, Name: "Empty Set", Year: "2024"}
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	missing := int64(99)
	empty := int64(2)
	tests := []struct {
		name string
		in   service.CreateSessionInput
		want error
	}{
		{"no source", service.CreateSessionInput{UserID: 10}, service.ErrInvalidInput},
		{"exam set not found", service.CreateSessionInput{UserID: 10, ExamSetID: &missing}, service.ErrNotFound},
		{"exam set empty", service.CreateSessionInput{UserID: 10, ExamSetID: &empty}, service.ErrNotFound},
		{"unknown question id", service.CreateSessionInput{UserID: 10, QuestionIDs: []int64{1, 777}}, service.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ps.CreateSession(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSubmitAnswerEvaluates(t *testing.T) {
	fs := newFakeStore()
	ids := fs.seedExamSet(1, 2)
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	examSetID := int64(1)
	sess, _, err := ps.CreateSession(ctx, service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	res, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[0], Answer: "A",
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !res.IsCorrect || res.CorrectAnswer != "A" {
		t.Errorf("correct submission: got (%v, %q)", res.IsCorrect, res.CorrectAnswer)
	}

	res, err = ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[1], Answer: "B",
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.IsCorrect {
		t.Error("wrong submission reported correct")
	}
	if res.CorrectAnswer != "A" {
		t.Errorf("correct answer not revealed: got %q", res.CorrectAnswer)
	}
}

func TestSubmitAnswerMissingFields(t *testing.T) {
	fs := newFakeStore()
	ids := fs.seedExamSet(1, 1)
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	examSetID := int64(1)
	sess, _, _ := ps.CreateSession(ctx, service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})

	cases := []struct {
		name string
		in   service.SubmitAnswerInput
	}{
		{"empty answer", service.SubmitAnswerInput{SessionID: sess.ID, UserID: 10, QuestionID: ids[0], Answer: ""}},
		{"zero session id", service.SubmitAnswerInput{UserID: 10, QuestionID: ids[0], Answer: "A"}},
		{"zero question id", service.SubmitAnswerInput{SessionID: sess.ID, UserID: 10, Answer: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ps.SubmitAnswer(ctx, tc.in); !errors.Is(err, service.ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}
	if len(fs.answers) != 0 {
		t.Error("rejected submission must not persist a record")
	}
}

func TestSubmitAnswerClosedSession(t *testing.T) {
	fs := newFakeStore()
	ids := fs.seedExamSet(1, 1)
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	examSetID := int64(1)
	sess, _, _ := ps.CreateSession(ctx, service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})
	if _, err := ps.UpdateSession(ctx, sess.ID, 10, service.UpdateSessionInput{EndSession: true}); err != nil {
		t.Fatalf("end session: %v", err)
	}

	_, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[0], Answer: "A",
	})
	if !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}
	if len(fs.answers) != 0 {
		t.Error("rejected submission must not persist a record")
	}
}

func TestSubmitAnswerDuplicate(t *testing.T) {
	fs := newFakeStore()
	ids := fs.seedExamSet(1, 1)
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	examSetID := int64(1)
	sess, _, _ := ps.CreateSession(ctx, service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})

	if _, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[0], Answer: "B",
	}); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	_, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[0], Answer: "A",
	})
	if !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}
	if len(fs.answers) != 1 {
		t.Fatalf("got %d records, want 1", len(fs.answers))
	}
	// The first record stands untouched.
	if fs.answers[0].UserAnswer != "B" || fs.answers[0].IsCorrect {
		t.Errorf("first record mutated: %+v", fs.answers[0])
	}
}

func TestSessionOwnership(t *testing.T) {
	fs := newFakeStore()
	ids := fs.seedExamSet(1, 1)
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	examSetID := int64(1)
	sess, _, _ := ps.CreateSession(ctx, service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})

	if _, err := ps.GetSession(ctx, sess.ID, 11); !errors.Is(err, service.ErrPermissionDenied) {
		t.Errorf("GetSession by stranger: got %v, want ErrPermissionDenied", err)
	}
	if _, err := ps.UpdateSession(ctx, sess.ID, 11, service.UpdateSessionInput{EndSession: true}); !errors.Is(err, service.ErrPermissionDenied) {
		t.Errorf("UpdateSession by stranger: got %v, want ErrPermissionDenied", err)
	}
	if _, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 11, QuestionID: ids[0], Answer: "A",
	}); !errors.Is(err, service.ErrPermissionDenied) {
		t.Errorf("SubmitAnswer by stranger: got %v, want ErrPermissionDenied", err)
	}

	// A missing session is NotFound even for a stranger.
	if _, err := ps.GetSession(ctx, 9999, 11); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("missing session: got %v, want ErrNotFound", err)
	}
}

func TestUpdateSessionEndIsIdempotent(t *testing.T) {
	fs := newFakeStore()
	fs.seedExamSet(1, 1)
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	examSetID := int64(1)
	sess, _, _ := ps.CreateSession(ctx, service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})

	first, err := ps.UpdateSession(ctx, sess.ID, 10, service.UpdateSessionInput{EndSession: true})
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if first.EndTime == nil {
		t.Fatal("end time not set")
	}

	score := 87.5
	second, err := ps.UpdateSession(ctx, sess.ID, 10, service.UpdateSessionInput{EndSession: true, Score: &score})
	if err != nil {
		t.Fatalf("re-end session: %v", err)
	}
	if !second.EndTime.Equal(*first.EndTime) {
		t.Error("re-ending moved the original end time")
	}
	if second.Score == nil || *second.Score != score {
		t.Error("score update on an ended session was dropped")
	}
}

func TestUpdateSessionNoFields(t *testing.T) {
	fs := newFakeStore()
	fs.seedExamSet(1, 1)
	ps := service.NewPracticeService(fs, discardLogger())

	examSetID := int64(1)
	sess, _, _ := ps.CreateSession(context.Background(), service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})
	if _, err := ps.UpdateSession(context.Background(), sess.ID, 10, service.UpdateSessionInput{}); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestGetAnswerStatsEmptyUser(t *testing.T) {
	fs := newFakeStore()
	ps := service.NewPracticeService(fs, discardLogger())

	stats, err := ps.GetAnswerStats(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetAnswerStats: %v", err)
	}
	if stats.TotalAnswers != 0 || stats.CorrectRate != 0 || stats.AverageTimeSpent != 0 {
		t.Errorf("expected all-zero stats, got %+v", stats)
	}
}

// TestPracticeRoundTrip walks the whole session lifecycle: open from an
// exam set, answer one right and one wrong, close, verify history and
// stats, then confirm the closed session rejects the remaining question.
func TestPracticeRoundTrip(t *testing.T) {
	fs := newFakeStore()
	ids := fs.seedExamSet(1, 3)
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	examSetID := int64(1)
	sess, questions, err := ps.CreateSession(ctx, service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}

	if res, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[0], Answer: "A",
	}); err != nil || !res.IsCorrect {
		t.Fatalf("q1: err=%v correct=%v", err, res != nil && res.IsCorrect)
	}
	if res, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[1], Answer: "C",
	}); err != nil || res.IsCorrect {
		t.Fatalf("q2: err=%v correct=%v", err, res != nil && res.IsCorrect)
	}

	closed, err := ps.UpdateSession(ctx, sess.ID, 10, service.UpdateSessionInput{EndSession: true})
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if closed.IsOpen() {
		t.Fatal("session still open after ending")
	}

	history, err := ps.GetHistory(ctx, 10)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 1 || history[0].AnsweredCount != 2 || history[0].CorrectSoFar != 1 {
		t.Fatalf("history = %+v", history)
	}

	stats, err := ps.GetAnswerStats(ctx, 10)
	if err != nil {
		t.Fatalf("GetAnswerStats: %v", err)
	}
	if stats.TotalAnswers != 2 || stats.CorrectAnswers != 1 || stats.CorrectRate != 50 {
		t.Fatalf("stats = %+v", stats)
	}

	if _, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[2], Answer: "A",
	}); !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("answer after close: got %v, want ErrInvalidState", err)
	}
}

func TestListAnswersScopedToOwnedSession(t *testing.T) {
	fs := newFakeStore()
	ids := fs.seedExamSet(1, 1)
	ps := service.NewPracticeService(fs, discardLogger())
	ctx := context.Background()

	examSetID := int64(1)
	sess, _, _ := ps.CreateSession(ctx, service.CreateSessionInput{UserID: 10, ExamSetID: &examSetID})
	if _, err := ps.SubmitAnswer(ctx, service.SubmitAnswerInput{
		SessionID: sess.ID, UserID: 10, QuestionID: ids[0], Answer: "A",
	}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	records, err := ps.ListAnswers(ctx, 10, &sess.ID)
	if err != nil || len(records) != 1 {
		t.Fatalf("owner list: err=%v len=%d", err, len(records))
	}
	if _, err := ps.ListAnswers(ctx, 11, &sess.ID); !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("stranger list: got %v, want ErrPermissionDenied", err)
	}
}
