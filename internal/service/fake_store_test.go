package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/db-engineer-practice/backend/internal/domain/practice"
	"github.com/db-engineer-practice/backend/internal/domain/question"
	"github.com/db-engineer-practice/backend/internal/domain/review"
	"github.com/db-engineer-practice/backend/internal/domain/user"
	"github.com/db-engineer-practice/backend/internal/store"
)

// fakeStore is an in-memory stand-in for the MySQL gateway, enforcing the
// same unique keys the real schema declares.
type fakeStore struct {
	examSets  map[int64]question.ExamSet
	questions map[int64]question.Question
	sessions  map[int64]*practice.Session
	answers   []question.AnswerRecord
	favorites map[int64]*review.Favorite
	wrongs    map[int64]*review.WrongQuestion
	users     map[int64]*user.User
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		examSets:  make(map[int64]question.ExamSet),
		questions: make(map[int64]question.Question),
		sessions:  make(map[int64]*practice.Session),
		favorites: make(map[int64]*review.Favorite),
		wrongs:    make(map[int64]*review.WrongQuestion),
		users:     make(map[int64]*user.User),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

// seedExamSet registers an exam set with n single-choice questions whose
// correct answer is always "A". Returns the question ids.
func (f *fakeStore) seedExamSet(examSetID int64, n int) []int64 {
	f.examSets[examSetID] = question.ExamSet{ID: examSetID, Name: "Test Set", Year: "2025"}
	var ids []int64
	for i := 1; i <= n; i++ {
		q := question.Question{
			ID:             f.id(),
			ExamSetID:      examSetID,
			QuestionNumber: i,
			Content:        "question",
			Type:           question.TypeSingleChoice,
			CorrectAnswer:  "A",
		}
		f.questions[q.ID] = q
		ids = append(ids, q.ID)
	}
	return ids
}

// ── Questions / exam sets ───────────────────────────────────────────────────

func (f *fakeStore) GetExamSet(_ context.Context, id int64) (*question.ExamSet, error) {
	es, ok := f.examSets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &es, nil
}

func (f *fakeStore) GetExamSetQuestions(_ context.Context, examSetID int64) ([]question.Question, error) {
	var out []question.Question
	for _, q := range f.questions {
		if q.ExamSetID == examSetID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionNumber < out[j].QuestionNumber })
	return out, nil
}

func (f *fakeStore) GetQuestion(_ context.Context, id int64) (*question.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &q, nil
}

func (f *fakeStore) GetQuestionsByIDs(_ context.Context, ids []int64) ([]question.Question, error) {
	seen := make(map[int64]struct{})
	var out []question.Question
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

// ── Sessions ────────────────────────────────────────────────────────────────

func (f *fakeStore) CreateSession(_ context.Context, userID int64, examSetID *int64, startTime time.Time) (int64, error) {
	id := f.id()
	f.sessions[id] = &practice.Session{
		ID:        id,
		UserID:    userID,
		ExamSetID: examSetID,
		StartTime: startTime,
		CreatedAt: startTime,
	}
	return id, nil
}

func (f *fakeStore) GetSession(_ context.Context, id int64) (*practice.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (f *fakeStore) UpdateSession(_ context.Context, id int64, patch practice.Patch) error {
	sess, ok := f.sessions[id]
	if !ok {
		return store.ErrNotFound
	}
	if patch.EndTime != nil {
		sess.EndTime = patch.EndTime
	}
	if patch.Duration != nil {
		sess.Duration = patch.Duration
	}
	if patch.TotalQuestions != nil {
		sess.TotalQuestions = patch.TotalQuestions
	}
	if patch.CorrectCount != nil {
		sess.CorrectCount = patch.CorrectCount
	}
	if patch.IncorrectCount != nil {
		sess.IncorrectCount = patch.IncorrectCount
	}
	if patch.Score != nil {
		sess.Score = patch.Score
	}
	return nil
}

func (f *fakeStore) ListSessions(_ context.Context, userID int64) ([]practice.Session, error) {
	var out []practice.Session
	for _, sess := range f.sessions {
		if sess.UserID != userID {
			continue
		}
		copied := *sess
		for _, rec := range f.answers {
			if rec.PracticeID == sess.ID {
				copied.AnsweredCount++
				if rec.IsCorrect {
					copied.CorrectSoFar++
				}
			}
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

// ── Answer records ──────────────────────────────────────────────────────────

func (f *fakeStore) CreateAnswerRecord(_ context.Context, rec *question.AnswerRecord) (int64, error) {
	for _, existing := range f.answers {
		if existing.PracticeID == rec.PracticeID && existing.QuestionID == rec.QuestionID {
			return 0, store.ErrDuplicate
		}
	}
	stored := *rec
	stored.ID = f.id()
	stored.CreatedAt = time.Now()
	f.answers = append(f.answers, stored)
	return stored.ID, nil
}

func (f *fakeStore) HasAnswer(_ context.Context, practiceID, questionID int64) (bool, error) {
	for _, rec := range f.answers {
		if rec.PracticeID == practiceID && rec.QuestionID == questionID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListAnswersBySession(_ context.Context, practiceID int64) ([]question.AnswerRecord, error) {
	var out []question.AnswerRecord
	for _, rec := range f.answers {
		if rec.PracticeID == practiceID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAnswersByUser(_ context.Context, userID int64) ([]question.AnswerRecord, error) {
	var out []question.AnswerRecord
	for _, rec := range f.answers {
		if sess, ok := f.sessions[rec.PracticeID]; ok && sess.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAnswerStats(ctx context.Context, userID int64) (store.AnswerStats, error) {
	records, _ := f.ListAnswersByUser(ctx, userID)
	var stats store.AnswerStats
	var timeSum, timed int
	for _, rec := range records {
		stats.TotalAnswers++
		if rec.IsCorrect {
			stats.CorrectAnswers++
		} else {
			stats.IncorrectAnswers++
		}
		if rec.TimeSpent != nil {
			timeSum += *rec.TimeSpent
			timed++
		}
	}
	if timed > 0 {
		stats.AverageTimeSpent = float64(timeSum) / float64(timed)
	}
	return stats, nil
}

// ── Favorites ───────────────────────────────────────────────────────────────

func (f *fakeStore) FindFavorite(_ context.Context, userID, questionID int64) (*review.Favorite, error) {
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.QuestionID == questionID {
			copied := *fav
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetFavorite(_ context.Context, id int64) (*review.Favorite, error) {
	fav, ok := f.favorites[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *fav
	return &copied, nil
}

func (f *fakeStore) CreateFavorite(ctx context.Context, userID, questionID int64) (int64, error) {
	if _, err := f.FindFavorite(ctx, userID, questionID); err == nil {
		return 0, store.ErrDuplicate
	}
	id := f.id()
	f.favorites[id] = &review.Favorite{ID: id, UserID: userID, QuestionID: questionID, CreatedAt: time.Now()}
	return id, nil
}

func (f *fakeStore) DeleteFavorite(_ context.Context, id int64) error {
	if _, ok := f.favorites[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.favorites, id)
	return nil
}

func (f *fakeStore) ListFavorites(_ context.Context, userID int64) ([]review.Favorite, error) {
	var out []review.Favorite
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, *fav)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── Wrong questions ─────────────────────────────────────────────────────────

func (f *fakeStore) FindWrongQuestion(_ context.Context, userID, questionID int64) (*review.WrongQuestion, error) {
	for _, wq := range f.wrongs {
		if wq.UserID == userID && wq.QuestionID == questionID {
			copied := *wq
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetWrongQuestion(_ context.Context, id int64) (*review.WrongQuestion, error) {
	wq, ok := f.wrongs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *wq
	return &copied, nil
}

func (f *fakeStore) CreateWrongQuestion(ctx context.Context, userID, questionID int64, status review.Status, note string) (int64, error) {
	if _, err := f.FindWrongQuestion(ctx, userID, questionID); err == nil {
		return 0, store.ErrDuplicate
	}
	id := f.id()
	now := time.Now()
	f.wrongs[id] = &review.WrongQuestion{
		ID: id, UserID: userID, QuestionID: questionID,
		WrongCount: 1, LastWrongTime: now, Note: note, Status: status,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (f *fakeStore) BumpWrongQuestion(_ context.Context, id int64, status review.Status, note string) error {
	wq, ok := f.wrongs[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	wq.WrongCount++
	wq.LastWrongTime = now
	wq.Status = status
	wq.Note = note
	wq.UpdatedAt = now
	return nil
}

func (f *fakeStore) UpdateWrongQuestion(_ context.Context, id int64, patch review.WrongQuestionPatch) error {
	wq, ok := f.wrongs[id]
	if !ok {
		return store.ErrNotFound
	}
	if patch.Status != nil {
		wq.Status = *patch.Status
	}
	if patch.Note != nil {
		wq.Note = *patch.Note
	}
	wq.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) DeleteWrongQuestion(_ context.Context, id int64) error {
	if _, ok := f.wrongs[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.wrongs, id)
	return nil
}

func (f *fakeStore) ListWrongQuestions(_ context.Context, userID int64, status *review.Status) ([]review.WrongQuestion, error) {
	var out []review.WrongQuestion
	for _, wq := range f.wrongs {
		if wq.UserID != userID {
			continue
		}
		if status != nil && wq.Status != *status {
			continue
		}
		out = append(out, *wq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// ── Users ───────────────────────────────────────────────────────────────────

func (f *fakeStore) FindUserByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) FindUserByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, username, email, passwordHash string, avatar *string) (int64, error) {
	if _, err := f.FindUserByUsername(ctx, username); err == nil {
		return 0, store.ErrDuplicate
	}
	if _, err := f.FindUserByEmail(ctx, email); err == nil {
		return 0, store.ErrDuplicate
	}
	id := f.id()
	f.users[id] = &user.User{
		ID: id, Username: username, Email: email, PasswordHash: passwordHash,
		Avatar: avatar, CreatedAt: time.Now(), Status: user.StatusEnabled,
	}
	return id, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, id int64, patch user.Patch) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Avatar != nil {
		u.Avatar = patch.Avatar
	}
	return nil
}

func (f *fakeStore) UpdateLastLogin(_ context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}
