package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentoria-api/internal/models"
)

const teacherColumns = "id, name, institution, email, password_hash, tag, active, created_at, updated_at"

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindActiveByID fetches an active teacher by ID.
func (r *TeacherRepository) FindActiveByID(ctx context.Context, id string) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers WHERE id = $1 AND active = TRUE"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindActiveByEmail fetches an active teacher by email.
func (r *TeacherRepository) FindActiveByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers WHERE email = $1 AND active = TRUE"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, email); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindActiveByTag fetches an active teacher by join tag.
func (r *TeacherRepository) FindActiveByTag(ctx context.Context, tag string) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers WHERE tag = $1 AND active = TRUE"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, tag); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ExistsByEmail checks whether any teacher, active or not, uses email.
func (r *TeacherRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM teachers WHERE email = $1 LIMIT 1", email)
}

// ExistsByTag checks whether any teacher holds tag.
func (r *TeacherRepository) ExistsByTag(ctx context.Context, tag string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM teachers WHERE tag = $1 LIMIT 1", tag)
}

func (r *TeacherRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var found int
	if err := r.db.GetContext(ctx, &found, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check teacher: %w", err)
	}
	return true, nil
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now

	const query = `INSERT INTO teachers (id, name, institution, email, password_hash, tag, active, created_at, updated_at)
		VALUES (:id, :name, :institution, :email, :password_hash, :tag, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Deactivate sets a teacher's active flag to false.
func (r *TeacherRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE teachers SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate teacher: %w", err)
	}
	return nil
}
