package store

import "context"

// The analytics queries mirror the aggregation the reporting screens need.
// Every SUM/AVG is wrapped in COALESCE so a user with no history gets zero
// rows or zero values, never NULL scan errors.

func (s *MySQLStore) PracticeAnswerCounts(ctx context.Context, userID int64) (PracticeCounts, error) {
	var counts PracticeCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT pr.id),
		       (SELECT COUNT(*) FROM answer_records ar JOIN practice_records pr2 ON ar.practice_id = pr2.id WHERE pr2.user_id = ?),
		       (SELECT COUNT(*) FROM answer_records ar JOIN practice_records pr2 ON ar.practice_id = pr2.id WHERE pr2.user_id = ? AND ar.is_correct = 1)
		FROM practice_records pr
		WHERE pr.user_id = ?`, userID, userID, userID).
		Scan(&counts.TotalPractice, &counts.TotalAnswered, &counts.TotalCorrect)
	return counts, err
}

func (s *MySQLStore) ReviewCounts(ctx context.Context, userID int64) (ReviewCounts, error) {
	var counts ReviewCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM wrong_questions wq WHERE wq.user_id = ?),
		       (SELECT COUNT(*) FROM user_favorites uf WHERE uf.user_id = ?)`,
		userID, userID).
		Scan(&counts.TotalWrongQuestions, &counts.TotalFavorites)
	return counts, err
}

// DailyActivity returns per-day answering activity for the most recent
// `days` active days. Days without activity are simply absent.
func (s *MySQLStore) DailyActivity(ctx context.Context, userID int64, days int) ([]DailyActivity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DATE_FORMAT(DATE(ar.created_at), '%Y-%m-%d'),
		       COUNT(DISTINCT ar.practice_id),
		       COUNT(*),
		       COALESCE(SUM(CASE WHEN ar.is_correct = 1 THEN 1 ELSE 0 END), 0)
		FROM answer_records ar
		JOIN practice_records pr ON ar.practice_id = pr.id
		WHERE pr.user_id = ?
		GROUP BY DATE(ar.created_at)
		ORDER BY DATE(ar.created_at) DESC
		LIMIT ?`, userID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activity []DailyActivity
	for rows.Next() {
		var d DailyActivity
		if err := rows.Scan(&d.Date, &d.PracticeCount, &d.QuestionCount, &d.CorrectCount); err != nil {
			return nil, err
		}
		activity = append(activity, d)
	}
	return activity, rows.Err()
}

// WeeklySummary returns per-week activity for the most recent `weeks`
// active week buckets. CorrectRatio is a 0..1 fraction.
func (s *MySQLStore) WeeklySummary(ctx context.Context, userID int64, weeks int) ([]WeeklySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT CONCAT(YEAR(ar.created_at), '-', WEEK(ar.created_at)),
		       COUNT(DISTINCT ar.practice_id),
		       COUNT(*),
		       COALESCE(SUM(CASE WHEN ar.is_correct = 1 THEN 1 ELSE 0 END) / COUNT(*), 0)
		FROM answer_records ar
		JOIN practice_records pr ON ar.practice_id = pr.id
		WHERE pr.user_id = ?
		GROUP BY CONCAT(YEAR(ar.created_at), '-', WEEK(ar.created_at))
		ORDER BY MIN(ar.created_at) DESC
		LIMIT ?`, userID, weeks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []WeeklySummary
	for rows.Next() {
		var w WeeklySummary
		if err := rows.Scan(&w.Week, &w.TotalPractice, &w.TotalQuestions, &w.CorrectRatio); err != nil {
			return nil, err
		}
		summary = append(summary, w)
	}
	return summary, rows.Err()
}

// KnowledgePoints reports mastery per exam set the user has touched. Exam
// sets stand in for knowledge points in the shared schema.
func (s *MySQLStore) KnowledgePoints(ctx context.Context, userID int64) ([]KnowledgePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT es.exam_name,
		       COUNT(DISTINCT q.question_id),
		       COALESCE(SUM(CASE WHEN ar.is_correct = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ar.is_correct = 1 THEN 1 ELSE 0 END) / COUNT(DISTINCT q.question_id), 0)
		FROM answer_records ar
		JOIN practice_records pr ON ar.practice_id = pr.id
		JOIN questions q ON ar.question_id = q.question_id
		JOIN exam_sets es ON q.exam_set_id = es.exam_set_id
		WHERE pr.user_id = ?
		GROUP BY es.exam_set_id, es.exam_name
		ORDER BY COUNT(DISTINCT q.question_id) DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []KnowledgePoint
	for rows.Next() {
		var p KnowledgePoint
		if err := rows.Scan(&p.Name, &p.TotalQuestions, &p.CorrectCount, &p.MasteryLevel); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *MySQLStore) QuestionTypeStats(ctx context.Context, userID int64) ([]QuestionTypeStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.question_type,
		       COUNT(*),
		       COALESCE(SUM(CASE WHEN ar.is_correct = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ar.is_correct = 1 THEN 1 ELSE 0 END) / COUNT(*), 0)
		FROM answer_records ar
		JOIN practice_records pr ON ar.practice_id = pr.id
		JOIN questions q ON ar.question_id = q.question_id
		WHERE pr.user_id = ?
		GROUP BY q.question_type`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []QuestionTypeStat
	for rows.Next() {
		var st QuestionTypeStat
		if err := rows.Scan(&st.Type, &st.Count, &st.CorrectCount, &st.AccuracyRate); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
