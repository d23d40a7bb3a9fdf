package review_test

import (
	"testing"

	"github.com/db-engineer-practice/backend/internal/domain/review"
)

func TestStatus_Valid(t *testing.T) {
	for _, s := range []review.Status{review.StatusNew, review.StatusReviewing, review.StatusMastered} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	for _, s := range []review.Status{"", "done", "NEW"} {
		if s.Valid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}
