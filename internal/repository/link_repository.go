package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentoria-api/internal/models"
)

// LinkRepository manages the student/teacher association table.
type LinkRepository struct {
	db *sqlx.DB
}

// NewLinkRepository constructs a LinkRepository.
func NewLinkRepository(db *sqlx.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Exists reports whether the pair is already linked.
func (r *LinkRepository) Exists(ctx context.Context, studentID, teacherID string) (bool, error) {
	const query = `SELECT 1 FROM student_teacher_links WHERE student_id = $1 AND teacher_id = $2 LIMIT 1`
	var found int
	if err := r.db.GetContext(ctx, &found, query, studentID, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check student link: %w", err)
	}
	return true, nil
}

// Create inserts a link row. Duplicate pairs surface as a unique violation from the store.
func (r *LinkRepository) Create(ctx context.Context, link *models.StudentTeacherLink) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO student_teacher_links (student_id, teacher_id, created_at) VALUES (:student_id, :teacher_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("create student link: %w", err)
	}
	return nil
}
