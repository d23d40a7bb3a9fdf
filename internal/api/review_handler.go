package api

import (
	"net/http"

	"github.com/db-engineer-practice/backend/internal/domain/review"
)

// ── Request / Response types ────────────────────────────────────────────────

type AddFavoriteRequest struct {
	QuestionID int64 `json:"question_id"`
}

type AddFavoriteResponse struct {
	ID int64 `json:"id"`
}

type AddWrongQuestionRequest struct {
	QuestionID int64  `json:"question_id"`
	Status     string `json:"status,omitempty"`
	Note       string `json:"note,omitempty"`
}

type AddWrongQuestionResponse struct {
	ID int64 `json:"id"`
}

type UpdateWrongQuestionRequest struct {
	Status *string `json:"status,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// ── Favorites ───────────────────────────────────────────────────────────────

// @Summary      Favorite a question
// @Description  Idempotent: favoriting an already-favorited question
// @Description  returns the existing entry's id.
// @Tags         Favorites
// @Accept       json
// @Produce      json
// @Param        body  body      AddFavoriteRequest  true  "Question to favorite"
// @Success      201   {object}  AddFavoriteResponse
// @Failure      400   {object}  MessageResponse
// @Failure      404   {object}  MessageResponse
// @Security     BearerAuth
// @Router       /favorites [post]
func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req AddFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.review.AddFavorite(r.Context(), userID(r), req.QuestionID)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, AddFavoriteResponse{ID: id})
}

// @Summary      List favorites
// @Description  The user's favorites with the question attached, newest
// @Description  first.
// @Tags         Favorites
// @Produce      json
// @Success      200  {array}  review.Favorite
// @Security     BearerAuth
// @Router       /favorites [get]
func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.review.ListFavorites(r.Context(), userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, favorites)
}

// @Summary      Remove a favorite
// @Tags         Favorites
// @Produce      json
// @Param        favoriteID  path  int  true  "Favorite ID"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse
// @Security     BearerAuth
// @Router       /favorites/{favoriteID} [delete]
func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "favoriteID", "favorite")
	if !ok {
		return
	}

	if err := h.review.RemoveFavorite(r.Context(), userID(r), id); h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "favorite removed"})
}

// ── Wrong-question book ─────────────────────────────────────────────────────

// @Summary      Record a wrong question
// @Description  Upsert: a repeat miss bumps the wrong count and refreshes
// @Description  the entry with the submitted status and note.
// @Tags         WrongQuestions
// @Accept       json
// @Produce      json
// @Param        body  body      AddWrongQuestionRequest  true  "Missed question"
// @Success      201   {object}  AddWrongQuestionResponse
// @Failure      400   {object}  MessageResponse
// @Failure      404   {object}  MessageResponse
// @Security     BearerAuth
// @Router       /wrong-questions [post]
func (h *Handler) addWrongQuestion(w http.ResponseWriter, r *http.Request) {
	var req AddWrongQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.review.AddWrongQuestion(r.Context(), userID(r), req.QuestionID, review.Status(req.Status), req.Note)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, AddWrongQuestionResponse{ID: id})
}

// @Summary      List wrong questions
// @Description  The user's wrong book, most recently touched first,
// @Description  optionally filtered by status.
// @Tags         WrongQuestions
// @Produce      json
// @Param        status  query  string  false  "new, reviewing or mastered"
// @Success      200  {array}   review.WrongQuestion
// @Failure      400  {object}  MessageResponse
// @Security     BearerAuth
// @Router       /wrong-questions [get]
func (h *Handler) listWrongQuestions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.review.ListWrongQuestions(r.Context(), userID(r), r.URL.Query().Get("status"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// @Summary      Get a wrong-question entry
// @Tags         WrongQuestions
// @Produce      json
// @Param        wrongID  path      int  true  "Entry ID"
// @Success      200      {object}  review.WrongQuestion
// @Failure      403      {object}  MessageResponse
// @Failure      404      {object}  MessageResponse
// @Security     BearerAuth
// @Router       /wrong-questions/{wrongID} [get]
func (h *Handler) getWrongQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "wrongID", "wrong-question entry")
	if !ok {
		return
	}

	entry, err := h.review.GetWrongQuestion(r.Context(), userID(r), id)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// @Summary      Update a wrong-question entry
// @Description  Changes status and/or note; the wrong count is only ever
// @Description  moved by repeat misses.
// @Tags         WrongQuestions
// @Accept       json
// @Produce      json
// @Param        wrongID  path      int                         true  "Entry ID"
// @Param        body     body      UpdateWrongQuestionRequest  true  "Fields to change"
// @Success      200      {object}  review.WrongQuestion
// @Failure      400      {object}  MessageResponse
// @Failure      403      {object}  MessageResponse
// @Failure      404      {object}  MessageResponse
// @Security     BearerAuth
// @Router       /wrong-questions/{wrongID} [put]
func (h *Handler) updateWrongQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "wrongID", "wrong-question entry")
	if !ok {
		return
	}

	var req UpdateWrongQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var patch review.WrongQuestionPatch
	if req.Status != nil {
		status := review.Status(*req.Status)
		patch.Status = &status
	}
	patch.Note = req.Note

	entry, err := h.review.UpdateWrongQuestion(r.Context(), userID(r), id, patch)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// @Summary      Remove a wrong-question entry
// @Tags         WrongQuestions
// @Produce      json
// @Param        wrongID  path  int  true  "Entry ID"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse
// @Security     BearerAuth
// @Router       /wrong-questions/{wrongID} [delete]
func (h *Handler) removeWrongQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "wrongID", "wrong-question entry")
	if !ok {
		return
	}

	if err := h.review.RemoveWrongQuestion(r.Context(), userID(r), id); h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "wrong-question entry removed"})
}
