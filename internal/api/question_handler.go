package api

import (
	"net/http"
	"strconv"

	"github.com/db-engineer-practice/backend/internal/domain/question"
	"github.com/db-engineer-practice/backend/internal/store"
)

// ── Response types ──────────────────────────────────────────────────────────

type QuestionListResponse struct {
	Questions []question.Question `json:"questions"`
	Total     int                 `json:"total"`
	Page      int                 `json:"page"`
	Limit     int                 `json:"limit"`
}

type ExamSetListResponse struct {
	ExamSets []question.ExamSet `json:"exam_sets"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func pageParams(r *http.Request) (page, limit int) {
	page = queryInt(r, "page", 1)
	limit = queryInt(r, "limit", defaultPageSize)
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// ── Handlers ────────────────────────────────────────────────────────────────

// @Summary      List questions
// @Description  Paginated question catalog, optionally filtered by exam set
// @Description  and question type.
// @Tags         Questions
// @Produce      json
// @Param        page           query  int     false  "Page (1-based)"
// @Param        limit          query  int     false  "Page size"
// @Param        exam_set_id    query  int     false  "Filter by exam set"
// @Param        question_type  query  string  false  "single_choice or multiple_choice"
// @Success      200  {object}  QuestionListResponse
// @Security     BearerAuth
// @Router       /questions [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	var filters store.QuestionFilters
	if raw := r.URL.Query().Get("exam_set_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "exam_set_id must be numeric")
			return
		}
		filters.ExamSetID = &id
	}
	filters.QuestionType = r.URL.Query().Get("question_type")

	questions, total, err := h.store.ListQuestions(r.Context(), page, limit, filters)
	if h.handleStoreError(w, err, "questions") {
		return
	}

	respondJSON(w, http.StatusOK, QuestionListResponse{
		Questions: questions,
		Total:     total,
		Page:      page,
		Limit:     limit,
	})
}

// @Summary      Get a question
// @Description  Returns one question with its options and correct answer.
// @Tags         Questions
// @Produce      json
// @Param        questionID  path      int  true  "Question ID"
// @Success      200         {object}  question.Question
// @Failure      404         {object}  MessageResponse
// @Security     BearerAuth
// @Router       /questions/{questionID} [get]
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "questionID", "question")
	if !ok {
		return
	}

	q, err := h.store.GetQuestion(r.Context(), id)
	if h.handleStoreError(w, err, "question") {
		return
	}

	respondJSON(w, http.StatusOK, q)
}

// @Summary      List exam sets
// @Tags         ExamSets
// @Produce      json
// @Param        page   query  int     false  "Page (1-based)"
// @Param        limit  query  int     false  "Page size"
// @Param        year   query  string  false  "Filter by year"
// @Success      200  {object}  ExamSetListResponse
// @Security     BearerAuth
// @Router       /exam-sets [get]
func (h *Handler) listExamSets(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	examSets, total, err := h.store.ListExamSets(r.Context(), page, limit, r.URL.Query().Get("year"))
	if h.handleStoreError(w, err, "exam sets") {
		return
	}

	respondJSON(w, http.StatusOK, ExamSetListResponse{
		ExamSets: examSets,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

// @Summary      Get an exam set
// @Tags         ExamSets
// @Produce      json
// @Param        examSetID  path      int  true  "Exam set ID"
// @Success      200        {object}  question.ExamSet
// @Failure      404        {object}  MessageResponse
// @Security     BearerAuth
// @Router       /exam-sets/{examSetID} [get]
func (h *Handler) getExamSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "examSetID", "exam set")
	if !ok {
		return
	}

	examSet, err := h.store.GetExamSet(r.Context(), id)
	if h.handleStoreError(w, err, "exam set") {
		return
	}

	respondJSON(w, http.StatusOK, examSet)
}

// @Summary      Get an exam set's questions
// @Description  Returns the full question list in exam-paper order.
// @Tags         ExamSets
// @Produce      json
// @Param        examSetID  path      int  true  "Exam set ID"
// @Success      200        {array}   question.Question
// @Failure      404        {object}  MessageResponse
// @Security     BearerAuth
// @Router       /exam-sets/{examSetID}/questions [get]
func (h *Handler) getExamSetQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "examSetID", "exam set")
	if !ok {
		return
	}
	ctx := r.Context()

	if _, err := h.store.GetExamSet(ctx, id); h.handleStoreError(w, err, "exam set") {
		return
	}

	questions, err := h.store.GetExamSetQuestions(ctx, id)
	if h.handleStoreError(w, err, "exam set") {
		return
	}

	respondJSON(w, http.StatusOK, questions)
}
