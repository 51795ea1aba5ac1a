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

func TestSessionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(sqlmock.AnyArg(), "tok", "u1", models.UserTypeStudent, now, now.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.Session{Token: "tok", UserID: "u1", UserType: models.UserTypeStudent, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(context.Background(), session))
	assert.NotEmpty(t, session.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryFindLatestByToken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE token = $1 ORDER BY created_at DESC LIMIT 1")).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "user_id", "user_type", "created_at", "expires_at"}).
			AddRow("s1", "tok", "u1", "teacher", now, now.Add(time.Hour)))

	session, err := repo.FindLatestByToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeTeacher, session.UserType)
	assert.Equal(t, "u1", session.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
