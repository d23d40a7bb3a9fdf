package api

import (
	"net/http"
	"strconv"

	"github.com/db-engineer-practice/backend/internal/domain/practice"
	"github.com/db-engineer-practice/backend/internal/domain/question"
	"github.com/db-engineer-practice/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreatePracticeRequest struct {
	ExamSetID   *int64  `json:"exam_set_id,omitempty"`
	QuestionIDs []int64 `json:"question_ids,omitempty"`
}

type CreatePracticeResponse struct {
	Session   practice.Session    `json:"session"`
	Questions []question.Question `json:"questions"`
}

type UpdatePracticeRequest struct {
	EndSession bool     `json:"end_session"`
	Score      *float64 `json:"score,omitempty"`
	Duration   *int     `json:"duration,omitempty"`
}

type SubmitAnswerRequest struct {
	PracticeID int64  `json:"practice_id"`
	QuestionID int64  `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	TimeSpent  *int   `json:"time_spent,omitempty"`
}

type AnswerListResponse struct {
	Records []question.AnswerRecord `json:"records"`
	Total   int                     `json:"total"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// @Summary      Start a practice session
// @Description  Opens a session from an exam set or an explicit question
// @Description  list and returns the questions to practice.
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        body  body      CreatePracticeRequest  true  "Question source"
// @Success      201   {object}  CreatePracticeResponse
// @Failure      400   {object}  MessageResponse
// @Failure      404   {object}  MessageResponse  "exam set missing or empty"
// @Security     BearerAuth
// @Router       /practice [post]
func (h *Handler) createPractice(w http.ResponseWriter, r *http.Request) {
	var req CreatePracticeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, questions, err := h.practice.CreateSession(r.Context(), service.CreateSessionInput{
		UserID:      userID(r),
		ExamSetID:   req.ExamSetID,
		QuestionIDs: req.QuestionIDs,
	})
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, CreatePracticeResponse{
		Session:   *sess,
		Questions: questions,
	})
}

// @Summary      Practice history
// @Description  All of the user's sessions, most recent first, annotated
// @Description  with answered and correct counts.
// @Tags         Practice
// @Produce      json
// @Success      200  {array}  practice.Session
// @Security     BearerAuth
// @Router       /practice/history [get]
func (h *Handler) practiceHistory(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.practice.GetHistory(r.Context(), userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

// @Summary      Get a practice session
// @Tags         Practice
// @Produce      json
// @Param        practiceID  path      int  true  "Session ID"
// @Success      200         {object}  practice.Session
// @Failure      403         {object}  MessageResponse
// @Failure      404         {object}  MessageResponse
// @Security     BearerAuth
// @Router       /practice/{practiceID} [get]
func (h *Handler) getPractice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "practiceID", "practice session")
	if !ok {
		return
	}

	sess, err := h.practice.GetSession(r.Context(), id, userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

// @Summary      Update or end a practice session
// @Description  Sets score/duration and, with end_session, closes the
// @Description  session. Re-ending keeps the original end time.
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        practiceID  path      int                    true  "Session ID"
// @Param        body        body      UpdatePracticeRequest  true  "Fields to change"
// @Success      200         {object}  practice.Session
// @Failure      400         {object}  MessageResponse
// @Failure      403         {object}  MessageResponse
// @Failure      404         {object}  MessageResponse
// @Security     BearerAuth
// @Router       /practice/{practiceID} [put]
func (h *Handler) updatePractice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "practiceID", "practice session")
	if !ok {
		return
	}

	var req UpdatePracticeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.practice.UpdateSession(r.Context(), id, userID(r), service.UpdateSessionInput{
		EndSession: req.EndSession,
		Score:      req.Score,
		Duration:   req.Duration,
	})
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

// @Summary      Submit an answer
// @Description  Evaluates one answer inside an open session and returns
// @Description  the verdict with the correct answer. One submission per
// @Description  question per session.
// @Tags         Answers
// @Accept       json
// @Produce      json
// @Param        body  body      SubmitAnswerRequest  true  "Answer"
// @Success      201   {object}  service.AnswerResult
// @Failure      400   {object}  MessageResponse  "missing fields, closed session or repeat answer"
// @Failure      403   {object}  MessageResponse
// @Failure      404   {object}  MessageResponse
// @Security     BearerAuth
// @Router       /answer-records [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.practice.SubmitAnswer(r.Context(), service.SubmitAnswerInput{
		SessionID:  req.PracticeID,
		UserID:     userID(r),
		QuestionID: req.QuestionID,
		Answer:     req.UserAnswer,
		TimeSpent:  req.TimeSpent,
	})
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// @Summary      List answer records
// @Description  All of the user's answers, or one session's with
// @Description  ?practice_id=.
// @Tags         Answers
// @Produce      json
// @Param        practice_id  query  int  false  "Limit to one session"
// @Success      200  {object}  AnswerListResponse
// @Failure      403  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse
// @Security     BearerAuth
// @Router       /answer-records [get]
func (h *Handler) listAnswers(w http.ResponseWriter, r *http.Request) {
	var sessionID *int64
	if raw := r.URL.Query().Get("practice_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "practice_id must be numeric")
			return
		}
		sessionID = &id
	}

	records, err := h.practice.ListAnswers(r.Context(), userID(r), sessionID)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, AnswerListResponse{Records: records, Total: len(records)})
}

// @Summary      Answer statistics
// @Description  Aggregates across all of the user's sessions; all zeroes
// @Description  for a user with no history.
// @Tags         Answers
// @Produce      json
// @Success      200  {object}  service.AnswerStats
// @Security     BearerAuth
// @Router       /answer-records/stats [get]
func (h *Handler) answerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.practice.GetAnswerStats(r.Context(), userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
