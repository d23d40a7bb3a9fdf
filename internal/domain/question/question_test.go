package question_test

import (
	"testing"

	"github.com/db-engineer-practice/backend/internal/domain/question"
)

func TestIsCorrect_SingleChoice(t *testing.T) {
	q := question.Question{Type: question.TypeSingleChoice, CorrectAnswer: "B"}

	tests := []struct {
		answer string
		want   bool
	}{
		{"B", true},
		{"b", true},
		{" b ", true},
		{"A", false},
		{"", false},
		{"A,B", false},
	}

	for _, tt := range tests {
		if got := q.IsCorrect(tt.answer); got != tt.want {
			t.Errorf("IsCorrect(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestIsCorrect_MultipleChoice_OrderIndependent(t *testing.T) {
	q := question.Question{Type: question.TypeMultipleChoice, CorrectAnswer: "A,C"}

	tests := []struct {
		answer string
		want   bool
	}{
		{"A,C", true},
		{"C,A", true},
		{"c, a", true},
		{"A", false},
		{"A,B", false},
		{"A,B,C", false},
		{"A,A", false}, // duplicates must not pad the set
		{"", false},
	}

	for _, tt := range tests {
		if got := q.IsCorrect(tt.answer); got != tt.want {
			t.Errorf("IsCorrect(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}
