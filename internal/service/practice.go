package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/db-engineer-practice/backend/internal/domain/practice"
	"github.com/db-engineer-practice/backend/internal/domain/question"
	"github.com/db-engineer-practice/backend/internal/store"
)

// PracticeStore is the slice of the persistence gateway the practice
// workflow needs.
type PracticeStore interface {
	GetExamSet(ctx context.Context, id int64) (*question.ExamSet, error)
	GetExamSetQuestions(ctx context.Context, examSetID int64) ([]question.Question, error)
	GetQuestion(ctx context.Context, id int64) (*question.Question, error)
	GetQuestionsByIDs(ctx context.Context, ids []int64) ([]question.Question, error)

	CreateSession(ctx context.Context, userID int64, examSetID *int64, startTime time.Time) (int64, error)
	GetSession(ctx context.Context, id int64) (*practice.Session, error)
	UpdateSession(ctx context.Context, id int64, patch practice.Patch) error
	ListSessions(ctx context.Context, userID int64) ([]practice.Session, error)

	CreateAnswerRecord(ctx context.Context, rec *question.AnswerRecord) (int64, error)
	HasAnswer(ctx context.Context, practiceID, questionID int64) (bool, error)
	ListAnswersBySession(ctx context.Context, practiceID int64) ([]question.AnswerRecord, error)
	ListAnswersByUser(ctx context.Context, userID int64) ([]question.AnswerRecord, error)
	GetAnswerStats(ctx context.Context, userID int64) (store.AnswerStats, error)
}

// PracticeService owns the practice-session lifecycle and answer
// evaluation: it is the single place where "right or wrong" is decided.
type PracticeService struct {
	store  PracticeStore
	logger *slog.Logger
	now    func() time.Time
}

func NewPracticeService(s PracticeStore, logger *slog.Logger) *PracticeService {
	return &PracticeService{store: s, logger: logger, now: time.Now}
}

// CreateSessionInput selects exactly one sourcing mode: an exam set or an
// explicit question list.
type CreateSessionInput struct {
	UserID      int64
	ExamSetID   *int64
	QuestionIDs []int64
}

// CreateSession opens a practice session and returns it together with the
// resolved question list so the caller can render the exam without a
// second round trip.
func (ps *PracticeService) CreateSession(ctx context.Context, in CreateSessionInput) (*practice.Session, []question.Question, error) {
	var questions []question.Question

	switch {
	case in.ExamSetID != nil:
		if _, err := ps.store.GetExamSet(ctx, *in.ExamSetID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil, notFound("exam set not found")
			}
			return nil, nil, err
		}
		var err error
		questions, err = ps.store.GetExamSetQuestions(ctx, *in.ExamSetID)
		if err != nil {
			return nil, nil, err
		}
		if len(questions) == 0 {
			return nil, nil, notFound("exam set has no questions")
		}

	case len(in.QuestionIDs) > 0:
		var err error
		questions, err = ps.store.GetQuestionsByIDs(ctx, in.QuestionIDs)
		if err != nil {
			return nil, nil, err
		}
		// Count equality catches unresolvable ids instead of silently
		// dropping them.
		if len(questions) != len(uniqueIDs(in.QuestionIDs)) {
			return nil, nil, invalidInput("one or more question ids do not exist")
		}

	default:
		return nil, nil, invalidInput("an exam set id or a list of question ids is required")
	}

	start := ps.now()
	sessionID, err := ps.store.CreateSession(ctx, in.UserID, in.ExamSetID, start)
	if err != nil {
		return nil, nil, err
	}

	sess := &practice.Session{
		ID:        sessionID,
		UserID:    in.UserID,
		ExamSetID: in.ExamSetID,
		StartTime: start,
	}
	return sess, questions, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	var out []int64
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// UpdateSessionInput carries the caller-changeable session fields.
type UpdateSessionInput struct {
	EndSession bool
	Score      *float64
	Duration   *int
}

func (in UpdateSessionInput) isEmpty() bool {
	return !in.EndSession && in.Score == nil && in.Duration == nil
}

// UpdateSession applies score/duration updates and, when EndSession is
// set, stamps the end time. Ending an already-ended session is an
// idempotent no-op: the original end time stands, later score/duration
// updates are still applied.
func (ps *PracticeService) UpdateSession(ctx context.Context, sessionID, requesterID int64, in UpdateSessionInput) (*practice.Session, error) {
	if in.isEmpty() {
		return nil, invalidInput("no fields to update")
	}

	sess, err := ps.ownedSession(ctx, sessionID, requesterID, "update")
	if err != nil {
		return nil, err
	}

	patch := practice.Patch{Score: in.Score, Duration: in.Duration}
	if in.EndSession && sess.IsOpen() {
		end := ps.now()
		patch.EndTime = &end
	}

	if err := ps.store.UpdateSession(ctx, sessionID, patch); err != nil {
		return nil, err
	}
	return ps.store.GetSession(ctx, sessionID)
}

// GetHistory returns all of a user's sessions, most recent first.
func (ps *PracticeService) GetHistory(ctx context.Context, userID int64) ([]practice.Session, error) {
	return ps.store.ListSessions(ctx, userID)
}

// GetSession is an ownership-checked fetch. A missing session reports
// NotFound before any ownership check so 404 wins over 403.
func (ps *PracticeService) GetSession(ctx context.Context, sessionID, requesterID int64) (*practice.Session, error) {
	return ps.ownedSession(ctx, sessionID, requesterID, "view")
}

func (ps *PracticeService) ownedSession(ctx context.Context, sessionID, requesterID int64, verb string) (*practice.Session, error) {
	sess, err := ps.store.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("practice session not found")
	}
	if err != nil {
		return nil, err
	}
	if !sess.IsOwnedBy(requesterID) {
		return nil, permissionDenied("no permission to " + verb + " this practice session")
	}
	return sess, nil
}

// ── Answer evaluation ───────────────────────────────────────────────────────

type SubmitAnswerInput struct {
	SessionID  int64
	UserID     int64
	QuestionID int64
	Answer     string
	TimeSpent  *int
}

// AnswerResult reveals the verdict and the correct answer immediately:
// this is practice mode, not exam mode.
type AnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// SubmitAnswer validates one submission and persists an immutable answer
// record. Precondition order: session exists → owned → still open →
// question exists → not yet answered in this session.
func (ps *PracticeService) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*AnswerResult, error) {
	if in.SessionID <= 0 || in.QuestionID <= 0 || in.Answer == "" {
		return nil, invalidInput("practice_id, question_id and user_answer are required")
	}

	sess, err := ps.ownedSession(ctx, in.SessionID, in.UserID, "answer in")
	if err != nil {
		return nil, err
	}
	if !sess.IsOpen() {
		return nil, invalidState("cannot answer a completed practice session")
	}

	q, err := ps.store.GetQuestion(ctx, in.QuestionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("question not found")
	}
	if err != nil {
		return nil, err
	}

	answered, err := ps.store.HasAnswer(ctx, in.SessionID, in.QuestionID)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, invalidState("question already answered in this session")
	}

	rec := &question.AnswerRecord{
		PracticeID: in.SessionID,
		QuestionID: in.QuestionID,
		UserAnswer: in.Answer,
		IsCorrect:  q.IsCorrect(in.Answer),
		TimeSpent:  in.TimeSpent,
	}
	if _, err := ps.store.CreateAnswerRecord(ctx, rec); err != nil {
		// The unique key on (practice_id, question_id) closes the race
		// between the existence check and the insert.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, invalidState("question already answered in this session")
		}
		return nil, err
	}

	ps.logger.Info("answer recorded",
		"session_id", in.SessionID, "question_id", in.QuestionID, "correct", rec.IsCorrect)

	return &AnswerResult{IsCorrect: rec.IsCorrect, CorrectAnswer: q.CorrectAnswer}, nil
}

// ListAnswers returns every answer record across the user's sessions,
// optionally narrowed to one session the user owns.
func (ps *PracticeService) ListAnswers(ctx context.Context, userID int64, sessionID *int64) ([]question.AnswerRecord, error) {
	if sessionID != nil {
		if _, err := ps.ownedSession(ctx, *sessionID, userID, "view"); err != nil {
			return nil, err
		}
		return ps.store.ListAnswersBySession(ctx, *sessionID)
	}
	return ps.store.ListAnswersByUser(ctx, userID)
}

// AnswerStats is the outward shape of a user's aggregate answering record.
// CorrectRate is a 0..100 percentage.
type AnswerStats struct {
	TotalAnswers     int     `json:"total_answers"`
	CorrectAnswers   int     `json:"correct_answers"`
	IncorrectAnswers int     `json:"incorrect_answers"`
	CorrectRate      float64 `json:"correct_rate"`
	AverageTimeSpent float64 `json:"average_time_spent"`
}

// GetAnswerStats aggregates all of a user's answers; every field is zero
// for a user with no history.
func (ps *PracticeService) GetAnswerStats(ctx context.Context, userID int64) (*AnswerStats, error) {
	raw, err := ps.store.GetAnswerStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &AnswerStats{
		TotalAnswers:     raw.TotalAnswers,
		CorrectAnswers:   raw.CorrectAnswers,
		IncorrectAnswers: raw.IncorrectAnswers,
		AverageTimeSpent: raw.AverageTimeSpent,
	}
	if raw.TotalAnswers > 0 {
		stats.CorrectRate = float64(raw.CorrectAnswers) / float64(raw.TotalAnswers) * 100
	}
	return stats, nil
}
