package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentoria-api/internal/models"
)

// AnswerRepository appends to and reads the answer log.
type AnswerRepository struct {
	db *sqlx.DB
}

// NewAnswerRepository constructs an AnswerRepository.
func NewAnswerRepository(db *sqlx.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create appends one response row.
func (r *AnswerRepository) Create(ctx context.Context, answer *models.AnsweredResponse) error {
	if answer.ID == "" {
		answer.ID = uuid.NewString()
	}
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO answered_responses (id, student_id, question_id, chosen_alternative, correct, created_at)
		VALUES (:id, :student_id, :question_id, :chosen_alternative, :correct, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, answer); err != nil {
		return fmt.Errorf("create answered response: %w", err)
	}
	return nil
}

// ListByStudent returns the student's answers joined with their questions, newest first.
func (r *AnswerRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AnswerRecord, error) {
	const query = `SELECT ar.id, ar.question_id, q.question_index, q.year AS question_year, q.title AS question_title,
			ar.chosen_alternative, q.correct_alternative, ar.correct, ar.created_at
		FROM answered_responses ar
		LEFT JOIN questions q ON q.id = ar.question_id
		WHERE ar.student_id = $1
		ORDER BY ar.created_at DESC`
	records := make([]models.AnswerRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list answers for student: %w", err)
	}
	return records, nil
}
