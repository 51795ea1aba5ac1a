package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mentoria-api/internal/models"
)

const questionColumns = `id, title, year, question_index, language, discipline, context,
	aquivo1, arquivo2, arquivo3, arquivo4, arquivo5, arquivo6, arquivo7, arquivo8, arquivo9, arquivo10,
	correct_alternative, alternatives_intro, alternative_a, alternative_b, alternative_c, alternative_d, alternative_e`

// QuestionRepository manages persistence for the question bank.
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository constructs a QuestionRepository.
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// FindByID fetches a question by ID.
func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions WHERE id = $1"
	var question models.Question
	if err := r.db.GetContext(ctx, &question, query, id); err != nil {
		return nil, err
	}
	return &question, nil
}

// FindRandom picks one question uniformly at random.
func (r *QuestionRepository) FindRandom(ctx context.Context) (*models.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions ORDER BY RANDOM() LIMIT 1"
	var question models.Question
	if err := r.db.GetContext(ctx, &question, query); err != nil {
		return nil, err
	}
	return &question, nil
}

// Upsert inserts the question or overwrites the row sharing its (year, index). The stored ID is
// written back into question.
func (r *QuestionRepository) Upsert(ctx context.Context, question *models.Question) error {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	const query = `INSERT INTO questions (id, title, year, question_index, language, discipline, context,
			aquivo1, arquivo2, arquivo3, arquivo4, arquivo5, arquivo6, arquivo7, arquivo8, arquivo9, arquivo10,
			correct_alternative, alternatives_intro, alternative_a, alternative_b, alternative_c, alternative_d, alternative_e)
		VALUES (:id, :title, :year, :question_index, :language, :discipline, :context,
			:aquivo1, :arquivo2, :arquivo3, :arquivo4, :arquivo5, :arquivo6, :arquivo7, :arquivo8, :arquivo9, :arquivo10,
			:correct_alternative, :alternatives_intro, :alternative_a, :alternative_b, :alternative_c, :alternative_d, :alternative_e)
		ON CONFLICT (year, question_index) DO UPDATE SET
			title = EXCLUDED.title, language = EXCLUDED.language, discipline = EXCLUDED.discipline, context = EXCLUDED.context,
			aquivo1 = EXCLUDED.aquivo1, arquivo2 = EXCLUDED.arquivo2, arquivo3 = EXCLUDED.arquivo3, arquivo4 = EXCLUDED.arquivo4,
			arquivo5 = EXCLUDED.arquivo5, arquivo6 = EXCLUDED.arquivo6, arquivo7 = EXCLUDED.arquivo7, arquivo8 = EXCLUDED.arquivo8,
			arquivo9 = EXCLUDED.arquivo9, arquivo10 = EXCLUDED.arquivo10,
			correct_alternative = EXCLUDED.correct_alternative, alternatives_intro = EXCLUDED.alternatives_intro,
			alternative_a = EXCLUDED.alternative_a, alternative_b = EXCLUDED.alternative_b, alternative_c = EXCLUDED.alternative_c,
			alternative_d = EXCLUDED.alternative_d, alternative_e = EXCLUDED.alternative_e
		RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, query, question)
	if err != nil {
		return fmt.Errorf("upsert question %d/%d: %w", question.Year, question.Index, err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&question.ID); err != nil {
			return fmt.Errorf("scan upserted question id: %w", err)
		}
	}
	return rows.Err()
}
