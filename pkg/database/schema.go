package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS teachers (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	institution VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	tag VARCHAR(32) NOT NULL UNIQUE,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS students (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS student_teacher_links (
	student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
	teacher_id UUID NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT uq_student_teacher PRIMARY KEY (student_id, teacher_id)
);

CREATE TABLE IF NOT EXISTS sessions (
	id UUID PRIMARY KEY,
	token VARCHAR(128) NOT NULL UNIQUE,
	user_id UUID NOT NULL,
	user_type VARCHAR(16) NOT NULL CHECK (user_type IN ('teacher', 'student')),
	created_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
	id UUID PRIMARY KEY,
	title VARCHAR(512) NOT NULL,
	year INTEGER NOT NULL,
	question_index INTEGER NOT NULL,
	language VARCHAR(64),
	discipline VARCHAR(128),
	context TEXT,
	aquivo1 VARCHAR(512),
	arquivo2 VARCHAR(512),
	arquivo3 VARCHAR(512),
	arquivo4 VARCHAR(512),
	arquivo5 VARCHAR(512),
	arquivo6 VARCHAR(512),
	arquivo7 VARCHAR(512),
	arquivo8 VARCHAR(512),
	arquivo9 VARCHAR(512),
	arquivo10 VARCHAR(512),
	correct_alternative CHAR(1) CHECK (correct_alternative IN ('A', 'B', 'C', 'D', 'E')),
	alternatives_intro TEXT,
	alternative_a TEXT,
	alternative_b TEXT,
	alternative_c TEXT,
	alternative_d TEXT,
	alternative_e TEXT,
	CONSTRAINT uq_question_year_index UNIQUE (year, question_index)
);

CREATE TABLE IF NOT EXISTS answered_responses (
	id UUID PRIMARY KEY,
	student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
	question_id UUID REFERENCES questions(id) ON DELETE SET NULL,
	chosen_alternative CHAR(1) NOT NULL,
	correct BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answered_responses_student ON answered_responses (student_id, created_at DESC);
`

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err originates from a PostgreSQL unique constraint.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

// WithTx runs fn inside a transaction, committing on success and rolling back otherwise.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
