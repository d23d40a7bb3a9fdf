package practice

import "time"

// Session is one timed attempt at a set of questions. A session is open
// until EndTime is set; EndTime is set at most once and is the only
// completion signal.
type Session struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	ExamSetID      *int64     `json:"exam_set_id,omitempty"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Duration       *int       `json:"duration,omitempty"` // seconds
	TotalQuestions *int       `json:"total_questions,omitempty"`
	CorrectCount   *int       `json:"correct_count,omitempty"`
	IncorrectCount *int       `json:"incorrect_count,omitempty"`
	Score          *float64   `json:"score,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	// Annotations filled by history queries, not stored columns.
	ExamName      string `json:"exam_name,omitempty"`
	AnsweredCount int    `json:"answered_count"`
	CorrectSoFar  int    `json:"answered_correct_count"`
}

// IsOpen reports whether the session still accepts answers.
func (s *Session) IsOpen() bool {
	return s.EndTime == nil
}

// IsOwnedBy reports whether userID owns this session.
func (s *Session) IsOwnedBy(userID int64) bool {
	return s.UserID == userID
}

// Patch lists the fields a caller may change on an open or closed session.
// Each pointer is a presence marker: nil means "leave unchanged".
type Patch struct {
	EndTime        *time.Time
	Duration       *int
	TotalQuestions *int
	CorrectCount   *int
	IncorrectCount *int
	Score          *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.EndTime == nil && p.Duration == nil && p.TotalQuestions == nil &&
		p.CorrectCount == nil && p.IncorrectCount == nil && p.Score == nil
}
