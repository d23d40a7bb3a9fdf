package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/db-engineer-practice/backend/internal/auth"
	"github.com/db-engineer-practice/backend/internal/domain/user"
	"github.com/db-engineer-practice/backend/internal/store"
)

// UserStore is the account slice of the persistence gateway.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*user.User, error)
	FindUserByEmail(ctx context.Context, email string) (*user.User, error)
	FindUserByID(ctx context.Context, id int64) (*user.User, error)
	CreateUser(ctx context.Context, username, email, passwordHash string, avatar *string) (int64, error)
	UpdateUser(ctx context.Context, id int64, patch user.Patch) error
	UpdateLastLogin(ctx context.Context, id int64) error
}

// UserService handles registration, login, and profile management.
type UserService struct {
	store  UserStore
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

func NewUserService(s UserStore, tokens *auth.TokenIssuer, logger *slog.Logger) *UserService {
	return &UserService{store: s, tokens: tokens, logger: logger}
}

// Register creates an account with a hashed password. Duplicate usernames
// and emails report Conflict.
func (us *UserService) Register(ctx context.Context, username, email, password string) (int64, error) {
	if username == "" || email == "" || password == "" {
		return 0, invalidInput("username, email and password are required")
	}

	if _, err := us.store.FindUserByUsername(ctx, username); err == nil {
		return 0, conflict("username already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}
	if _, err := us.store.FindUserByEmail(ctx, email); err == nil {
		return 0, conflict("email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := us.store.CreateUser(ctx, username, email, hash, nil)
	if errors.Is(err, store.ErrDuplicate) {
		// Unique keys on users back up the check above under concurrency.
		return 0, conflict("username or email already taken")
	}
	if err != nil {
		return 0, err
	}

	us.logger.Info("user registered", "user_id", id, "username", username)
	return id, nil
}

// Login verifies credentials and issues a token. Unknown users and wrong
// passwords share one message so existence is not leaked.
func (us *UserService) Login(ctx context.Context, username, password string) (string, *user.Info, error) {
	if username == "" || password == "" {
		return "", nil, invalidInput("username and password are required")
	}

	u, err := us.store.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, unauthenticated("incorrect username or password")
	}
	if err != nil {
		return "", nil, err
	}

	if !auth.CheckPassword(password, u.PasswordHash) {
		return "", nil, unauthenticated("incorrect username or password")
	}

	if err := us.store.UpdateLastLogin(ctx, u.ID); err != nil {
		return "", nil, err
	}

	token, err := us.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return "", nil, err
	}

	info := u.Info()
	return token, &info, nil
}

func (us *UserService) GetProfile(ctx context.Context, userID int64) (*user.Info, error) {
	u, err := us.store.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	info := u.Info()
	return &info, nil
}

// ProfileUpdate carries the caller-visible profile fields; nil means
// unchanged. The password arrives in plaintext and is hashed here.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
	Avatar   *string
}

func (p ProfileUpdate) isEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil && p.Avatar == nil
}

func (us *UserService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*user.Info, error) {
	if update.isEmpty() {
		return nil, invalidInput("no fields to update")
	}

	if update.Username != nil {
		if existing, err := us.store.FindUserByUsername(ctx, *update.Username); err == nil && existing.ID != userID {
			return nil, conflict("username already taken")
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	if update.Email != nil {
		if existing, err := us.store.FindUserByEmail(ctx, *update.Email); err == nil && existing.ID != userID {
			return nil, conflict("email already registered")
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	patch := user.Patch{Username: update.Username, Email: update.Email, Avatar: update.Avatar}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	if err := us.store.UpdateUser(ctx, userID, patch); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflict("username or email already taken")
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("user not found")
		}
		return nil, err
	}
	return us.GetProfile(ctx, userID)
}
