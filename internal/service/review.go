package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/db-engineer-practice/backend/internal/domain/question"
	"github.com/db-engineer-practice/backend/internal/domain/review"
	"github.com/db-engineer-practice/backend/internal/store"
)

// ReviewStore is the persistence slice behind favorites and the
// wrong-question book.
type ReviewStore interface {
	GetQuestion(ctx context.Context, id int64) (*question.Question, error)

	FindFavorite(ctx context.Context, userID, questionID int64) (*review.Favorite, error)
	GetFavorite(ctx context.Context, id int64) (*review.Favorite, error)
	CreateFavorite(ctx context.Context, userID, questionID int64) (int64, error)
	DeleteFavorite(ctx context.Context, id int64) error
	ListFavorites(ctx context.Context, userID int64) ([]review.Favorite, error)

	FindWrongQuestion(ctx context.Context, userID, questionID int64) (*review.WrongQuestion, error)
	GetWrongQuestion(ctx context.Context, id int64) (*review.WrongQuestion, error)
	CreateWrongQuestion(ctx context.Context, userID, questionID int64, status review.Status, note string) (int64, error)
	BumpWrongQuestion(ctx context.Context, id int64, status review.Status, note string) error
	UpdateWrongQuestion(ctx context.Context, id int64, patch review.WrongQuestionPatch) error
	DeleteWrongQuestion(ctx context.Context, id int64) error
	ListWrongQuestions(ctx context.Context, userID int64, status *review.Status) ([]review.WrongQuestion, error)
}

// ReviewService maintains the two per-user review registries: favorites
// and the wrong-question book.
type ReviewService struct {
	store  ReviewStore
	logger *slog.Logger
}

func NewReviewService(s ReviewStore, logger *slog.Logger) *ReviewService {
	return &ReviewService{store: s, logger: logger}
}

func (rs *ReviewService) questionExists(ctx context.Context, questionID int64) error {
	if _, err := rs.store.GetQuestion(ctx, questionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("question not found")
		}
		return err
	}
	return nil
}

// ── Favorites ───────────────────────────────────────────────────────────────

// AddFavorite is an idempotent upsert: adding an already-favorited question
// returns the existing id unchanged.
func (rs *ReviewService) AddFavorite(ctx context.Context, userID, questionID int64) (int64, error) {
	if questionID <= 0 {
		return 0, invalidInput("question_id is required")
	}
	if err := rs.questionExists(ctx, questionID); err != nil {
		return 0, err
	}

	existing, err := rs.store.FindFavorite(ctx, userID, questionID)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}

	id, err := rs.store.CreateFavorite(ctx, userID, questionID)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost the race against a concurrent add; the winner's row is the
		// one we wanted anyway.
		if existing, ferr := rs.store.FindFavorite(ctx, userID, questionID); ferr == nil {
			return existing.ID, nil
		}
		return 0, err
	}
	return id, err
}

func (rs *ReviewService) RemoveFavorite(ctx context.Context, userID, favoriteID int64) error {
	fav, err := rs.store.GetFavorite(ctx, favoriteID)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("favorite not found")
	}
	if err != nil {
		return err
	}
	if fav.UserID != userID {
		return permissionDenied("no permission to remove this favorite")
	}
	return rs.store.DeleteFavorite(ctx, favoriteID)
}

func (rs *ReviewService) ListFavorites(ctx context.Context, userID int64) ([]review.Favorite, error) {
	return rs.store.ListFavorites(ctx, userID)
}

// ── Wrong-question book ─────────────────────────────────────────────────────

// AddWrongQuestion upserts a wrong-book entry. A repeat miss increments the
// entry's wrong count, refreshes its last-wrong time, and the submitted
// status/note win over the stored ones.
func (rs *ReviewService) AddWrongQuestion(ctx context.Context, userID, questionID int64, status review.Status, note string) (int64, error) {
	if status == "" {
		status = review.StatusNew
	}
	if !status.Valid() {
		return 0, invalidInput("status must be one of new, reviewing, mastered")
	}
	if questionID <= 0 {
		return 0, invalidInput("question_id is required")
	}
	if err := rs.questionExists(ctx, questionID); err != nil {
		return 0, err
	}

	existing, err := rs.store.FindWrongQuestion(ctx, userID, questionID)
	if err == nil {
		if err := rs.store.BumpWrongQuestion(ctx, existing.ID, status, note); err != nil {
			return 0, err
		}
		return existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}

	id, err := rs.store.CreateWrongQuestion(ctx, userID, questionID, status, note)
	if errors.Is(err, store.ErrDuplicate) {
		// Concurrent first miss of the same question: fold into the
		// winner's row as a repeat.
		existing, ferr := rs.store.FindWrongQuestion(ctx, userID, questionID)
		if ferr != nil {
			return 0, err
		}
		if berr := rs.store.BumpWrongQuestion(ctx, existing.ID, status, note); berr != nil {
			return 0, berr
		}
		return existing.ID, nil
	}
	return id, err
}

func (rs *ReviewService) GetWrongQuestion(ctx context.Context, userID, id int64) (*review.WrongQuestion, error) {
	wq, err := rs.ownedWrongQuestion(ctx, userID, id, "view")
	if err != nil {
		return nil, err
	}

	q, err := rs.store.GetQuestion(ctx, wq.QuestionID)
	if err == nil {
		wq.Question = q
	}
	return wq, nil
}

func (rs *ReviewService) UpdateWrongQuestion(ctx context.Context, userID, id int64, patch review.WrongQuestionPatch) (*review.WrongQuestion, error) {
	if patch.IsEmpty() {
		return nil, invalidInput("no fields to update")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, invalidInput("status must be one of new, reviewing, mastered")
	}

	if _, err := rs.ownedWrongQuestion(ctx, userID, id, "update"); err != nil {
		return nil, err
	}
	if err := rs.store.UpdateWrongQuestion(ctx, id, patch); err != nil {
		return nil, err
	}
	return rs.store.GetWrongQuestion(ctx, id)
}

func (rs *ReviewService) RemoveWrongQuestion(ctx context.Context, userID, id int64) error {
	if _, err := rs.ownedWrongQuestion(ctx, userID, id, "remove"); err != nil {
		return err
	}
	return rs.store.DeleteWrongQuestion(ctx, id)
}

func (rs *ReviewService) ListWrongQuestions(ctx context.Context, userID int64, statusFilter string) ([]review.WrongQuestion, error) {
	var status *review.Status
	if statusFilter != "" {
		s := review.Status(statusFilter)
		if !s.Valid() {
			return nil, invalidInput("status must be one of new, reviewing, mastered")
		}
		status = &s
	}
	return rs.store.ListWrongQuestions(ctx, userID, status)
}

func (rs *ReviewService) ownedWrongQuestion(ctx context.Context, userID, id int64, verb string) (*review.WrongQuestion, error) {
	wq, err := rs.store.GetWrongQuestion(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("wrong-question entry not found")
	}
	if err != nil {
		return nil, err
	}
	if wq.UserID != userID {
		return nil, permissionDenied("no permission to " + verb + " this wrong-question entry")
	}
	return wq, nil
}
