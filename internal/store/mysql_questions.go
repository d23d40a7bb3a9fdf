package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/db-engineer-practice/backend/internal/domain/question"
)

// QuestionFilters narrows question listings.
type QuestionFilters struct {
	ExamSetID    *int64
	QuestionType string
}

const questionColumns = "question_id, exam_set_id, question_number, content, question_type, correct_answer"

// questionRow is a scan target for question columns embedded in joins.
type questionRow struct {
	ID             int64
	ExamSetID      int64
	QuestionNumber int
	Content        string
	Type           question.Type
	CorrectAnswer  string
}

func (r questionRow) toDomain() *question.Question {
	return &question.Question{
		ID:             r.ID,
		ExamSetID:      r.ExamSetID,
		QuestionNumber: r.QuestionNumber,
		Content:        r.Content,
		Type:           r.Type,
		CorrectAnswer:  r.CorrectAnswer,
	}
}

func scanQuestions(rows *sql.Rows) ([]question.Question, error) {
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(&q.ID, &q.ExamSetID, &q.QuestionNumber, &q.Content, &q.Type, &q.CorrectAnswer); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *MySQLStore) GetQuestion(ctx context.Context, id int64) (*question.Question, error) {
	var q question.Question
	err := s.db.QueryRowContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE question_id = ?", id).
		Scan(&q.ID, &q.ExamSetID, &q.QuestionNumber, &q.Content, &q.Type, &q.CorrectAnswer)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	opts, err := s.optionsFor(ctx, q.ExamSetID, q.QuestionNumber)
	if err != nil {
		return nil, err
	}
	q.Options = opts
	return &q, nil
}

func (s *MySQLStore) GetQuestionsByIDs(ctx context.Context, ids []int64) ([]question.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE question_id IN ("+placeholders+") ORDER BY question_number",
		args...)
	if err != nil {
		return nil, err
	}

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachOptions(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *MySQLStore) ListQuestions(ctx context.Context, page, limit int, filters QuestionFilters) ([]question.Question, int, error) {
	var conditions []string
	var args []any

	if filters.ExamSetID != nil {
		conditions = append(conditions, "exam_set_id = ?")
		args = append(args, *filters.ExamSetID)
	}
	if filters.QuestionType != "" {
		conditions = append(conditions, "question_type = ?")
		args = append(args, filters.QuestionType)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM questions"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+questionColumns+" FROM questions"+whereClause+" ORDER BY exam_set_id, question_number LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachOptions(ctx, questions); err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (s *MySQLStore) optionsFor(ctx context.Context, examSetID int64, questionNumber int) ([]question.Option, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT exam_set_id, question_number, option_label, option_content FROM options WHERE exam_set_id = ? AND question_number = ? ORDER BY option_label",
		examSetID, questionNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []question.Option
	for rows.Next() {
		var o question.Option
		if err := rows.Scan(&o.ExamSetID, &o.QuestionNumber, &o.Label, &o.Content); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// attachOptions loads options for all questions in one query and assigns
// them in place.
func (s *MySQLStore) attachOptions(ctx context.Context, questions []question.Question) error {
	if len(questions) == 0 {
		return nil
	}

	conditions := make([]string, len(questions))
	args := make([]any, 0, len(questions)*2)
	for i, q := range questions {
		conditions[i] = "(exam_set_id = ? AND question_number = ?)"
		args = append(args, q.ExamSetID, q.QuestionNumber)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT exam_set_id, question_number, option_label, option_content FROM options WHERE "+
			strings.Join(conditions, " OR ")+" ORDER BY exam_set_id, question_number, option_label",
		args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	type key struct {
		examSetID int64
		number    int
	}
	optionsMap := make(map[key][]question.Option)
	for rows.Next() {
		var o question.Option
		if err := rows.Scan(&o.ExamSetID, &o.QuestionNumber, &o.Label, &o.Content); err != nil {
			return err
		}
		k := key{o.ExamSetID, o.QuestionNumber}
		optionsMap[k] = append(optionsMap[k], o)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range questions {
		questions[i].Options = optionsMap[key{questions[i].ExamSetID, questions[i].QuestionNumber}]
	}
	return nil
}

// ============================================================================
// Exam sets
// ============================================================================

func (s *MySQLStore) GetExamSet(ctx context.Context, id int64) (*question.ExamSet, error) {
	var es question.ExamSet
	var description sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT exam_set_id, exam_name, year, description FROM exam_sets WHERE exam_set_id = ?", id).
		Scan(&es.ID, &es.Name, &es.Year, &description)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	es.Description = description.String
	return &es, nil
}

func (s *MySQLStore) ListExamSets(ctx context.Context, page, limit int, year string) ([]question.ExamSet, int, error) {
	whereClause := ""
	var args []any
	if year != "" {
		whereClause = " WHERE year = ?"
		args = append(args, year)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM exam_sets"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := s.db.QueryContext(ctx,
		"SELECT exam_set_id, exam_name, year, description FROM exam_sets"+whereClause+
			" ORDER BY year DESC, exam_set_id DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var examSets []question.ExamSet
	for rows.Next() {
		var es question.ExamSet
		var description sql.NullString
		if err := rows.Scan(&es.ID, &es.Name, &es.Year, &description); err != nil {
			return nil, 0, err
		}
		es.Description = description.String
		examSets = append(examSets, es)
	}
	return examSets, total, rows.Err()
}

func (s *MySQLStore) GetExamSetQuestions(ctx context.Context, examSetID int64) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE exam_set_id = ? ORDER BY question_number",
		examSetID)
	if err != nil {
		return nil, err
	}

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachOptions(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}
