package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/db-engineer-practice/backend/internal/domain/review"
)

// ============================================================================
// Favorites
// ============================================================================

func (s *MySQLStore) FindFavorite(ctx context.Context, userID, questionID int64) (*review.Favorite, error) {
	var fav review.Favorite
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, question_id, created_at FROM user_favorites WHERE user_id = ? AND question_id = ?",
		userID, questionID).
		Scan(&fav.ID, &fav.UserID, &fav.QuestionID, &fav.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (s *MySQLStore) GetFavorite(ctx context.Context, id int64) (*review.Favorite, error) {
	var fav review.Favorite
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, question_id, created_at FROM user_favorites WHERE id = ?", id).
		Scan(&fav.ID, &fav.UserID, &fav.QuestionID, &fav.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (s *MySQLStore) CreateFavorite(ctx context.Context, userID, questionID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO user_favorites (user_id, question_id) VALUES (?, ?)",
		userID, questionID)
	if isDuplicateKey(err) {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *MySQLStore) DeleteFavorite(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM user_favorites WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFavorites returns a user's favorites, newest first, each joined with
// its question. Options are attached by the caller via the question store.
func (s *MySQLStore) ListFavorites(ctx context.Context, userID int64) ([]review.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.user_id, f.question_id, f.created_at,
		       q.question_id, q.exam_set_id, q.question_number, q.content, q.question_type, q.correct_answer
		FROM user_favorites f
		JOIN questions q ON f.question_id = q.question_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []review.Favorite
	for rows.Next() {
		var fav review.Favorite
		var q questionRow
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.QuestionID, &fav.CreatedAt,
			&q.ID, &q.ExamSetID, &q.QuestionNumber, &q.Content, &q.Type, &q.CorrectAnswer); err != nil {
			return nil, err
		}
		fav.Question = q.toDomain()
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range favorites {
		opts, err := s.optionsFor(ctx, favorites[i].Question.ExamSetID, favorites[i].Question.QuestionNumber)
		if err != nil {
			return nil, err
		}
		favorites[i].Question.Options = opts
	}
	return favorites, nil
}

// ============================================================================
// Wrong questions
// ============================================================================

const wrongQuestionColumns = "id, user_id, question_id, wrong_count, last_wrong_time, note, status, created_at, updated_at"

func scanWrongQuestion(scan func(dest ...any) error) (*review.WrongQuestion, error) {
	var wq review.WrongQuestion
	var note sql.NullString
	err := scan(&wq.ID, &wq.UserID, &wq.QuestionID, &wq.WrongCount, &wq.LastWrongTime,
		&note, &wq.Status, &wq.CreatedAt, &wq.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	wq.Note = note.String
	return &wq, nil
}

func (s *MySQLStore) FindWrongQuestion(ctx context.Context, userID, questionID int64) (*review.WrongQuestion, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+wrongQuestionColumns+" FROM wrong_questions WHERE user_id = ? AND question_id = ?",
		userID, questionID)
	return scanWrongQuestion(row.Scan)
}

func (s *MySQLStore) GetWrongQuestion(ctx context.Context, id int64) (*review.WrongQuestion, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+wrongQuestionColumns+" FROM wrong_questions WHERE id = ?", id)
	return scanWrongQuestion(row.Scan)
}

func (s *MySQLStore) CreateWrongQuestion(ctx context.Context, userID, questionID int64, status review.Status, note string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO wrong_questions (user_id, question_id, wrong_count, last_wrong_time, status, note) VALUES (?, ?, 1, NOW(), ?, ?)",
		userID, questionID, status, note)
	if isDuplicateKey(err) {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// BumpWrongQuestion records a repeat miss: wrong_count+1, refreshed
// last_wrong_time, and the latest status/note win.
func (s *MySQLStore) BumpWrongQuestion(ctx context.Context, id int64, status review.Status, note string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE wrong_questions SET wrong_count = wrong_count + 1, last_wrong_time = NOW(), status = ?, note = ?, updated_at = NOW() WHERE id = ?",
		status, note, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) UpdateWrongQuestion(ctx context.Context, id int64, patch review.WrongQuestionPatch) error {
	var sets []string
	var args []any

	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *patch.Note)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	_, err := s.db.ExecContext(ctx,
		"UPDATE wrong_questions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

func (s *MySQLStore) DeleteWrongQuestion(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM wrong_questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) ListWrongQuestions(ctx context.Context, userID int64, status *review.Status) ([]review.WrongQuestion, error) {
	query := `
		SELECT wq.id, wq.user_id, wq.question_id, wq.wrong_count, wq.last_wrong_time,
		       wq.note, wq.status, wq.created_at, wq.updated_at,
		       q.question_id, q.exam_set_id, q.question_number, q.content, q.question_type, q.correct_answer
		FROM wrong_questions wq
		JOIN questions q ON wq.question_id = q.question_id
		WHERE wq.user_id = ?`
	args := []any{userID}
	if status != nil {
		query += " AND wq.status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY wq.updated_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []review.WrongQuestion
	for rows.Next() {
		var wq review.WrongQuestion
		var note sql.NullString
		var q questionRow
		if err := rows.Scan(&wq.ID, &wq.UserID, &wq.QuestionID, &wq.WrongCount, &wq.LastWrongTime,
			&note, &wq.Status, &wq.CreatedAt, &wq.UpdatedAt,
			&q.ID, &q.ExamSetID, &q.QuestionNumber, &q.Content, &q.Type, &q.CorrectAnswer); err != nil {
			return nil, err
		}
		wq.Note = note.String
		wq.Question = q.toDomain()
		entries = append(entries, wq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		opts, err := s.optionsFor(ctx, entries[i].Question.ExamSetID, entries[i].Question.QuestionNumber)
		if err != nil {
			return nil, err
		}
		entries[i].Question.Options = opts
	}
	return entries, nil
}
