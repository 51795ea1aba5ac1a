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
	"github.com/noah-isme/mentoria-api/pkg/database"
)

const studentColumns = "id, name, email, password_hash, active, created_at, updated_at"

// StudentRepository manages persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindActiveByID fetches an active student by ID.
func (r *StudentRepository) FindActiveByID(ctx context.Context, id string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE id = $1 AND active = TRUE"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindActiveByEmail fetches an active student by email.
func (r *StudentRepository) FindActiveByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE email = $1 AND active = TRUE"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByEmail checks whether any student uses email.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var found int
	if err := r.db.GetContext(ctx, &found, "SELECT 1 FROM students WHERE email = $1 LIMIT 1", email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check student email: %w", err)
	}
	return true, nil
}

// CreateWithTeacher inserts the student and its first teacher link in one transaction.
func (r *StudentRepository) CreateWithTeacher(ctx context.Context, student *models.Student, teacherID string) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const insertStudent = `INSERT INTO students (id, name, email, password_hash, active, created_at, updated_at)
			VALUES (:id, :name, :email, :password_hash, :active, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, insertStudent, student); err != nil {
			return fmt.Errorf("create student: %w", err)
		}
		const insertLink = `INSERT INTO student_teacher_links (student_id, teacher_id, created_at) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, insertLink, student.ID, teacherID, now); err != nil {
			return fmt.Errorf("link student to teacher: %w", err)
		}
		return nil
	})
}

// ListSummariesByTeacher aggregates answer totals for the teacher's active students, ordered by name.
func (r *StudentRepository) ListSummariesByTeacher(ctx context.Context, teacherID string) ([]models.StudentSummary, error) {
	const query = `SELECT s.id, s.name, s.email,
			COUNT(ar.id) AS total_respostas,
			COALESCE(SUM(CASE WHEN ar.correct THEN 1 ELSE 0 END), 0) AS total_corretas
		FROM students s
		JOIN student_teacher_links l ON l.student_id = s.id
		LEFT JOIN answered_responses ar ON ar.student_id = s.id
		WHERE l.teacher_id = $1 AND s.active = TRUE
		GROUP BY s.id, s.name, s.email
		ORDER BY s.name`
	summaries := make([]models.StudentSummary, 0)
	if err := r.db.SelectContext(ctx, &summaries, query, teacherID); err != nil {
		return nil, fmt.Errorf("list student summaries: %w", err)
	}
	for i := range summaries {
		summaries[i].TotalWrong = summaries[i].TotalResponses - summaries[i].TotalCorrect
	}
	return summaries, nil
}
