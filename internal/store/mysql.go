package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/db-engineer-practice/backend/internal/domain/user"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INT AUTO_INCREMENT PRIMARY KEY,
    username VARCHAR(50) NOT NULL UNIQUE,
    email VARCHAR(100) NOT NULL UNIQUE,
    password VARCHAR(255) NOT NULL,
    avatar VARCHAR(255),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_login DATETIME,
    status TINYINT NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS exam_sets (
    exam_set_id INT AUTO_INCREMENT PRIMARY KEY,
    exam_name VARCHAR(100) NOT NULL,
    year VARCHAR(10) NOT NULL,
    description TEXT
);

CREATE TABLE IF NOT EXISTS questions (
    question_id INT AUTO_INCREMENT PRIMARY KEY,
    exam_set_id INT NOT NULL,
    question_number INT NOT NULL,
    content TEXT NOT NULL,
    question_type ENUM('single_choice','multiple_choice') NOT NULL,
    correct_answer VARCHAR(50) NOT NULL,
    FOREIGN KEY (exam_set_id) REFERENCES exam_sets(exam_set_id)
);

CREATE TABLE IF NOT EXISTS options (
    exam_set_id INT NOT NULL,
    question_number INT NOT NULL,
    option_label VARCHAR(5) NOT NULL,
    option_content TEXT NOT NULL,
    PRIMARY KEY (exam_set_id, question_number, option_label)
);

CREATE TABLE IF NOT EXISTS practice_records (
    id INT AUTO_INCREMENT PRIMARY KEY,
    user_id INT NOT NULL,
    exam_set_id INT,
    start_time DATETIME NOT NULL,
    end_time DATETIME,
    duration INT,
    total_questions INT,
    correct_count INT,
    incorrect_count INT,
    score DECIMAL(5,2),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS answer_records (
    id INT AUTO_INCREMENT PRIMARY KEY,
    practice_id INT NOT NULL,
    question_id INT NOT NULL,
    user_answer VARCHAR(255),
    is_correct TINYINT(1) NOT NULL,
    time_spent INT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE KEY uq_practice_question (practice_id, question_id),
    FOREIGN KEY (practice_id) REFERENCES practice_records(id)
);

CREATE TABLE IF NOT EXISTS user_favorites (
    id INT AUTO_INCREMENT PRIMARY KEY,
    user_id INT NOT NULL,
    question_id INT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE KEY uq_user_question (user_id, question_id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS wrong_questions (
    id INT AUTO_INCREMENT PRIMARY KEY,
    user_id INT NOT NULL,
    question_id INT NOT NULL,
    wrong_count INT NOT NULL DEFAULT 1,
    last_wrong_time DATETIME NOT NULL,
    note TEXT,
    status ENUM('new','reviewing','mastered') NOT NULL DEFAULT 'new',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    UNIQUE KEY uq_user_question (user_id, question_id),
    FOREIGN KEY (user_id) REFERENCES users(id)
);
`

// MySQLStore is the persistence gateway. One instance wraps one bounded
// connection pool and is shared by every component.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQL(dsn string, maxOpenConns int) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// InitSchema creates any missing tables. The statements are split because
// the driver executes one statement per Exec call.
func (s *MySQLStore) InitSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";\n\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// isDuplicateKey reports whether err is a MySQL unique-key violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// ============================================================================
// Users
// ============================================================================

const userColumns = "id, username, email, password, avatar, created_at, last_login, status"

func scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var avatar sql.NullString
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &avatar, &u.CreatedAt, &lastLogin, &u.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}

func (s *MySQLStore) FindUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ? AND status = 1", username))
}

func (s *MySQLStore) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? AND status = 1", email))
}

func (s *MySQLStore) FindUserByID(ctx context.Context, id int64) (*user.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? AND status = 1", id))
}

func (s *MySQLStore) CreateUser(ctx context.Context, username, email, passwordHash string, avatar *string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password, avatar, status) VALUES (?, ?, ?, ?, 1)",
		username, email, passwordHash, avatar)
	if isDuplicateKey(err) {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateUser applies a profile patch as a single statement. The SET clause
// is assembled from a fixed field table, never from caller input.
func (s *MySQLStore) UpdateUser(ctx context.Context, id int64, patch user.Patch) error {
	var sets []string
	var args []any

	if patch.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *patch.Username)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.PasswordHash != nil {
		sets = append(sets, "password = ?")
		args = append(args, *patch.PasswordHash)
	}
	if patch.Avatar != nil {
		sets = append(sets, "avatar = ?")
		args = append(args, *patch.Avatar)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "UPDATE users SET last_login = NOW() WHERE id = ?", id)
	return err
}
