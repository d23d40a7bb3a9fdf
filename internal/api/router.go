// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires every endpoint onto the mux. Everything except
// registration and login sits behind the auth middleware.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Auth
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.Handle("POST /api/auth/logout", h.authenticated(h.logout))
	mux.Handle("GET /api/auth/profile", h.authenticated(h.getProfile))
	mux.Handle("PUT /api/auth/profile", h.authenticated(h.updateProfile))

	// Questions and exam sets (read-only catalog)
	mux.Handle("GET /api/questions", h.authenticated(h.listQuestions))
	mux.Handle("GET /api/questions/{questionID}", h.authenticated(h.getQuestion))
	mux.Handle("GET /api/exam-sets", h.authenticated(h.listExamSets))
	mux.Handle("GET /api/exam-sets/{examSetID}", h.authenticated(h.getExamSet))
	mux.Handle("GET /api/exam-sets/{examSetID}/questions", h.authenticated(h.getExamSetQuestions))

	// Practice sessions
	mux.Handle("POST /api/practice", h.authenticated(h.createPractice))
	mux.Handle("GET /api/practice/history", h.authenticated(h.practiceHistory))
	mux.Handle("GET /api/practice/{practiceID}", h.authenticated(h.getPractice))
	mux.Handle("PUT /api/practice/{practiceID}", h.authenticated(h.updatePractice))

	// Answer records
	mux.Handle("POST /api/answer-records", h.authenticated(h.submitAnswer))
	mux.Handle("GET /api/answer-records", h.authenticated(h.listAnswers))
	mux.Handle("GET /api/answer-records/stats", h.authenticated(h.answerStats))

	// Favorites
	mux.Handle("POST /api/favorites", h.authenticated(h.addFavorite))
	mux.Handle("GET /api/favorites", h.authenticated(h.listFavorites))
	mux.Handle("DELETE /api/favorites/{favoriteID}", h.authenticated(h.removeFavorite))

	// Wrong-question book
	mux.Handle("POST /api/wrong-questions", h.authenticated(h.addWrongQuestion))
	mux.Handle("GET /api/wrong-questions", h.authenticated(h.listWrongQuestions))
	mux.Handle("GET /api/wrong-questions/{wrongID}", h.authenticated(h.getWrongQuestion))
	mux.Handle("PUT /api/wrong-questions/{wrongID}", h.authenticated(h.updateWrongQuestion))
	mux.Handle("DELETE /api/wrong-questions/{wrongID}", h.authenticated(h.removeWrongQuestion))

	// Analytics
	mux.Handle("GET /api/analytics/overview", h.authenticated(h.analyticsOverview))
	mux.Handle("GET /api/analytics/progress", h.authenticated(h.analyticsProgress))
	mux.Handle("GET /api/analytics/knowledge-points", h.authenticated(h.analyticsKnowledgePoints))
	mux.Handle("GET /api/analytics/question-types", h.authenticated(h.analyticsQuestionTypes))
}
