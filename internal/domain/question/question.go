package question

import (
	"strings"
	"time"
)

type Type string

const (
	TypeSingleChoice   Type = "single_choice"
	TypeMultipleChoice Type = "multiple_choice"
)

// Option is one selectable choice for a question. Options are keyed by
// (exam set, question number), not by question id — that layout comes from
// the shared database schema.
type Option struct {
	ExamSetID      int64  `json:"exam_set_id"`
	QuestionNumber int    `json:"question_number"`
	Label          string `json:"option_label"` // A, B, C, D...
	Content        string `json:"option_content"`
}

type Question struct {
	ID             int64    `json:"question_id"`
	ExamSetID      int64    `json:"exam_set_id"`
	QuestionNumber int      `json:"question_number"`
	Content        string   `json:"content"`
	Type           Type     `json:"question_type"`
	CorrectAnswer  string   `json:"correct_answer"` // "A" or "A,C"
	Options        []Option `json:"options,omitempty"`
}

type ExamSet struct {
	ID          int64      `json:"exam_set_id"`
	Name        string     `json:"exam_name"`
	Year        string     `json:"year"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
}

// IsCorrect reports whether a submitted answer matches the question's
// authoritative answer. Single-choice answers are compared as a single
// case-insensitive label. Multiple-choice answers are compared as label
// sets, so "C,A" matches a correct answer of "A,C".
func (q *Question) IsCorrect(userAnswer string) bool {
	if q.Type == TypeMultipleChoice {
		return sameLabelSet(splitLabels(userAnswer), splitLabels(q.CorrectAnswer))
	}
	return normalizeLabel(userAnswer) == normalizeLabel(q.CorrectAnswer)
}

func normalizeLabel(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func splitLabels(answer string) []string {
	var labels []string
	for _, part := range strings.Split(answer, ",") {
		if l := normalizeLabel(part); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// sameLabelSet treats both sides as sets so duplicates in the submission
// cannot pad a short answer into a match.
func sameLabelSet(submitted, correct []string) bool {
	if len(submitted) != len(correct) {
		return false
	}
	set := make(map[string]struct{}, len(submitted))
	for _, l := range submitted {
		set[l] = struct{}{}
	}
	if len(set) != len(correct) {
		return false
	}
	for _, l := range correct {
		if _, ok := set[l]; !ok {
			return false
		}
	}
	return true
}

// AnswerRecord is one immutable answer to one question inside a practice
// session. Correctness is computed once at submission time and never
// recomputed.
type AnswerRecord struct {
	ID         int64     `json:"id"`
	PracticeID int64     `json:"practice_id"`
	QuestionID int64     `json:"question_id"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	TimeSpent  *int      `json:"time_spent,omitempty"` // seconds
	CreatedAt  time.Time `json:"created_at"`
}
