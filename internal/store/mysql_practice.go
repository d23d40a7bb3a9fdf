package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/db-engineer-practice/backend/internal/domain/practice"
	"github.com/db-engineer-practice/backend/internal/domain/question"
)

func (s *MySQLStore) CreateSession(ctx context.Context, userID int64, examSetID *int64, startTime time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO practice_records (user_id, exam_set_id, start_time) VALUES (?, ?, ?)",
		userID, examSetID, startTime)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const sessionColumns = "id, user_id, exam_set_id, start_time, end_time, duration, total_questions, correct_count, incorrect_count, score, created_at"

func scanSession(scan func(dest ...any) error) (*practice.Session, error) {
	var sess practice.Session
	var examSetID sql.NullInt64
	var endTime sql.NullTime
	var duration, totalQuestions, correctCount, incorrectCount sql.NullInt64
	var score sql.NullFloat64

	err := scan(&sess.ID, &sess.UserID, &examSetID, &sess.StartTime, &endTime,
		&duration, &totalQuestions, &correctCount, &incorrectCount, &score, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if examSetID.Valid {
		sess.ExamSetID = &examSetID.Int64
	}
	if endTime.Valid {
		sess.EndTime = &endTime.Time
	}
	if duration.Valid {
		d := int(duration.Int64)
		sess.Duration = &d
	}
	if totalQuestions.Valid {
		n := int(totalQuestions.Int64)
		sess.TotalQuestions = &n
	}
	if correctCount.Valid {
		n := int(correctCount.Int64)
		sess.CorrectCount = &n
	}
	if incorrectCount.Valid {
		n := int(incorrectCount.Int64)
		sess.IncorrectCount = &n
	}
	if score.Valid {
		sess.Score = &score.Float64
	}
	return &sess, nil
}

func (s *MySQLStore) GetSession(ctx context.Context, id int64) (*practice.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM practice_records WHERE id = ?", id)
	return scanSession(row.Scan)
}

// UpdateSession applies a session patch as one statement built from a fixed
// field table.
func (s *MySQLStore) UpdateSession(ctx context.Context, id int64, patch practice.Patch) error {
	var sets []string
	var args []any

	if patch.EndTime != nil {
		sets = append(sets, "end_time = ?")
		args = append(args, *patch.EndTime)
	}
	if patch.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *patch.Duration)
	}
	if patch.TotalQuestions != nil {
		sets = append(sets, "total_questions = ?")
		args = append(args, *patch.TotalQuestions)
	}
	if patch.CorrectCount != nil {
		sets = append(sets, "correct_count = ?")
		args = append(args, *patch.CorrectCount)
	}
	if patch.IncorrectCount != nil {
		sets = append(sets, "incorrect_count = ?")
		args = append(args, *patch.IncorrectCount)
	}
	if patch.Score != nil {
		sets = append(sets, "score = ?")
		args = append(args, *patch.Score)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	_, err := s.db.ExecContext(ctx,
		"UPDATE practice_records SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// ListSessions returns a user's practice history, newest first, annotated
// with the exam name and answer counts.
func (s *MySQLStore) ListSessions(ctx context.Context, userID int64) ([]practice.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pr.id, pr.user_id, pr.exam_set_id, pr.start_time, pr.end_time,
		       pr.duration, pr.total_questions, pr.correct_count, pr.incorrect_count,
		       pr.score, pr.created_at,
		       COALESCE(es.exam_name, ''),
		       (SELECT COUNT(*) FROM answer_records ar WHERE ar.practice_id = pr.id),
		       (SELECT COUNT(*) FROM answer_records ar WHERE ar.practice_id = pr.id AND ar.is_correct = 1)
		FROM practice_records pr
		LEFT JOIN exam_sets es ON pr.exam_set_id = es.exam_set_id
		WHERE pr.user_id = ?
		ORDER BY pr.start_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []practice.Session
	for rows.Next() {
		var sess practice.Session
		var examSetID sql.NullInt64
		var endTime sql.NullTime
		var duration, totalQuestions, correctCount, incorrectCount sql.NullInt64
		var score sql.NullFloat64

		if err := rows.Scan(&sess.ID, &sess.UserID, &examSetID, &sess.StartTime, &endTime,
			&duration, &totalQuestions, &correctCount, &incorrectCount, &score, &sess.CreatedAt,
			&sess.ExamName, &sess.AnsweredCount, &sess.CorrectSoFar); err != nil {
			return nil, err
		}

		if examSetID.Valid {
			sess.ExamSetID = &examSetID.Int64
		}
		if endTime.Valid {
			sess.EndTime = &endTime.Time
		}
		if duration.Valid {
			d := int(duration.Int64)
			sess.Duration = &d
		}
		if totalQuestions.Valid {
			n := int(totalQuestions.Int64)
			sess.TotalQuestions = &n
		}
		if correctCount.Valid {
			n := int(correctCount.Int64)
			sess.CorrectCount = &n
		}
		if incorrectCount.Valid {
			n := int(incorrectCount.Int64)
			sess.IncorrectCount = &n
		}
		if score.Valid {
			sess.Score = &score.Float64
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// ============================================================================
// Answer records
// ============================================================================

func (s *MySQLStore) CreateAnswerRecord(ctx context.Context, rec *question.AnswerRecord) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO answer_records (practice_id, question_id, user_answer, is_correct, time_spent) VALUES (?, ?, ?, ?, ?)",
		rec.PracticeID, rec.QuestionID, rec.UserAnswer, rec.IsCorrect, rec.TimeSpent)
	if isDuplicateKey(err) {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *MySQLStore) HasAnswer(ctx context.Context, practiceID, questionID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM answer_records WHERE practice_id = ? AND question_id = ?",
		practiceID, questionID).Scan(&n)
	return n > 0, err
}

const answerColumns = "id, practice_id, question_id, user_answer, is_correct, time_spent, created_at"

func scanAnswers(rows *sql.Rows) ([]question.AnswerRecord, error) {
	defer rows.Close()

	var records []question.AnswerRecord
	for rows.Next() {
		var rec question.AnswerRecord
		var userAnswer sql.NullString
		var timeSpent sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.PracticeID, &rec.QuestionID, &userAnswer,
			&rec.IsCorrect, &timeSpent, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.UserAnswer = userAnswer.String
		if timeSpent.Valid {
			t := int(timeSpent.Int64)
			rec.TimeSpent = &t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *MySQLStore) ListAnswersBySession(ctx context.Context, practiceID int64) ([]question.AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+answerColumns+" FROM answer_records WHERE practice_id = ? ORDER BY created_at",
		practiceID)
	if err != nil {
		return nil, err
	}
	return scanAnswers(rows)
}

func (s *MySQLStore) ListAnswersByUser(ctx context.Context, userID int64) ([]question.AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ar.id, ar.practice_id, ar.question_id, ar.user_answer, ar.is_correct, ar.time_spent, ar.created_at
		FROM answer_records ar
		JOIN practice_records pr ON ar.practice_id = pr.id
		WHERE pr.user_id = ?
		ORDER BY ar.practice_id, ar.created_at`, userID)
	if err != nil {
		return nil, err
	}
	return scanAnswers(rows)
}

// GetAnswerStats aggregates a user's answers. COALESCE keeps the zero-value
// contract for users with no history.
func (s *MySQLStore) GetAnswerStats(ctx context.Context, userID int64) (AnswerStats, error) {
	var stats AnswerStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN ar.is_correct = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ar.is_correct = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(ar.time_spent), 0)
		FROM answer_records ar
		JOIN practice_records pr ON ar.practice_id = pr.id
		WHERE pr.user_id = ?`, userID).
		Scan(&stats.TotalAnswers, &stats.CorrectAnswers, &stats.IncorrectAnswers, &stats.AverageTimeSpent)
	return stats, err
}
