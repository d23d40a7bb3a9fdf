package api

import "net/http"

// @Summary      Learning overview
// @Description  Headline numbers: sessions, answers, accuracy (0..100),
// @Description  wrong-book and favorite sizes.
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  service.Overview
// @Security     BearerAuth
// @Router       /analytics/overview [get]
func (h *Handler) analyticsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analytics.GetOverview(r.Context(), userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// @Summary      Learning progress
// @Description  Daily activity for the last 14 active days and weekly
// @Description  buckets for the last 8 active weeks. Idle periods are
// @Description  absent from the series, not zero-filled.
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  service.Progress
// @Security     BearerAuth
// @Router       /analytics/progress [get]
func (h *Handler) analyticsProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.analytics.GetProgress(r.Context(), userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// @Summary      Knowledge-point mastery
// @Description  Per-exam-set mastery (0..1) over the sets the user has
// @Description  attempted.
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  service.KnowledgePoints
// @Security     BearerAuth
// @Router       /analytics/knowledge-points [get]
func (h *Handler) analyticsKnowledgePoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.analytics.GetKnowledgePoints(r.Context(), userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, points)
}

// @Summary      Question-type accuracy
// @Description  Answer accuracy (0..1) broken down by question type.
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  service.QuestionTypes
// @Security     BearerAuth
// @Router       /analytics/question-types [get]
func (h *Handler) analyticsQuestionTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.analytics.GetQuestionTypes(r.Context(), userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, types)
}
