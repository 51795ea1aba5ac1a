package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentoria-api/internal/models"
)

var questionColumnNames = []string{
	"id", "title", "year", "question_index", "language", "discipline", "context",
	"aquivo1", "arquivo2", "arquivo3", "arquivo4", "arquivo5", "arquivo6", "arquivo7", "arquivo8", "arquivo9", "arquivo10",
	"correct_alternative", "alternatives_intro", "alternative_a", "alternative_b", "alternative_c", "alternative_d", "alternative_e",
}

func TestQuestionRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuestionRepository(db)

	rows := sqlmock.NewRows(questionColumnNames).AddRow(
		"q1", "Questão 7", 2021, 7, nil, "matematica", "veja {{aquivo1}}",
		"https://cdn.test/a.png", nil, nil, nil, nil, nil, nil, nil, nil, nil,
		"C", nil, "a", "b", "c", "d", "e",
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM questions WHERE id = $1")).WithArgs("q1").WillReturnRows(rows)

	q, err := repo.FindByID(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, 2021, q.Year)
	assert.Equal(t, 7, q.Index)
	assert.Equal(t, "C", *q.CorrectAlternative)
	assert.Equal(t, "https://cdn.test/a.png", *q.File1)
	assert.Nil(t, q.Language)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepositoryFindRandom(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuestionRepository(db)

	rows := sqlmock.NewRows(questionColumnNames).AddRow(
		"q9", "T", 2020, 1, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, nil,
	)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY RANDOM() LIMIT 1")).WillReturnRows(rows)

	q, err := repo.FindRandom(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "q9", q.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepositoryUpsertReturnsStoredID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuestionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (year, question_index) DO UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-id"))

	q := &models.Question{Title: "T", Year: 2020, Index: 3}
	require.NoError(t, repo.Upsert(context.Background(), q))
	assert.Equal(t, "existing-id", q.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
