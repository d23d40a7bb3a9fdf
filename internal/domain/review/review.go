package review

import (
	"time"

	"github.com/db-engineer-practice/backend/internal/domain/question"
)

// Status is the review workflow state of a wrong-question entry.
type Status string

const (
	StatusNew       Status = "new"
	StatusReviewing Status = "reviewing"
	StatusMastered  Status = "mastered"
)

// Valid reports whether s is one of the known workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusReviewing, StatusMastered:
		return true
	}
	return false
}

// Favorite marks a question a user wants to revisit. At most one per
// (user, question); adding again returns the existing entry.
type Favorite struct {
	ID         int64              `json:"id"`
	UserID     int64              `json:"user_id"`
	QuestionID int64              `json:"question_id"`
	CreatedAt  time.Time          `json:"created_at"`
	Question   *question.Question `json:"question,omitempty"`
}

// WrongQuestion is one entry in a user's wrong-question book. Re-adding an
// existing entry increments WrongCount instead of creating a duplicate.
type WrongQuestion struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"user_id"`
	QuestionID    int64              `json:"question_id"`
	WrongCount    int                `json:"wrong_count"`
	LastWrongTime time.Time          `json:"last_wrong_time"`
	Note          string             `json:"note,omitempty"`
	Status        Status             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Question      *question.Question `json:"question,omitempty"`
}

// WrongQuestionPatch carries the updatable fields of a wrong-question
// entry; nil means "leave unchanged".
type WrongQuestionPatch struct {
	Status *Status
	Note   *string
}

func (p WrongQuestionPatch) IsEmpty() bool {
	return p.Status == nil && p.Note == nil
}
