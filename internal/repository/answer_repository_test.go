package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentoria-api/internal/models"
)

func TestAnswerRepositoryCreateAppendsEveryCall(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnswerRepository(db)

	qid := "q1"
	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO answered_responses").
			WithArgs(sqlmock.AnyArg(), "s1", &qid, "C", true, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	first := &models.AnsweredResponse{StudentID: "s1", QuestionID: &qid, ChosenAlternative: "C", Correct: true}
	second := &models.AnsweredResponse{StudentID: "s1", QuestionID: &qid, ChosenAlternative: "C", Correct: true}
	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.Create(context.Background(), second))
	assert.NotEqual(t, first.ID, second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnswerRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "question_id", "question_index", "question_year", "question_title", "chosen_alternative", "correct_alternative", "correct", "created_at"}).
		AddRow("a2", "q1", 7, 2021, "Questão 7", "B", "C", false, now).
		AddRow("a1", nil, nil, nil, nil, "A", nil, false, now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY ar.created_at DESC")).WithArgs("s1").WillReturnRows(rows)

	records, err := repo.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 7, *records[0].QuestionIndex)
	assert.Nil(t, records[1].QuestionTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}
