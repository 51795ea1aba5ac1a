package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mentoria-api/internal/models"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

type mockSessionRepo struct {
	rows []models.Session
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	session.ID = "session-" + session.Token[:4]
	m.rows = append(m.rows, *session)
	return nil
}

func (m *mockSessionRepo) FindLatestByToken(ctx context.Context, token string) (*models.Session, error) {
	var latest *models.Session
	for i := range m.rows {
		row := m.rows[i]
		if row.Token != token {
			continue
		}
		if latest == nil || row.CreatedAt.After(latest.CreatedAt) {
			latest = &row
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	return latest, nil
}

type mockAuthTeacherRepo struct {
	byEmail map[string]*models.Teacher
}

func (m *mockAuthTeacherRepo) FindActiveByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	if t, ok := m.byEmail[email]; ok && t.Active {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

type mockAuthStudentRepo struct {
	byEmail map[string]*models.Student
}

func (m *mockAuthStudentRepo) FindActiveByEmail(ctx context.Context, email string) (*models.Student, error) {
	if s, ok := m.byEmail[email]; ok && s.Active {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestAuthService(t *testing.T) (*AuthService, *mockSessionRepo) {
	t.Helper()
	sessions := &mockSessionRepo{}
	teachers := &mockAuthTeacherRepo{byEmail: map[string]*models.Teacher{
		"ada@example.com":  {ID: "t1", Email: "ada@example.com", PasswordHash: hashPassword(t, "secret1"), Active: true},
		"gone@example.com": {ID: "t2", Email: "gone@example.com", PasswordHash: hashPassword(t, "secret1"), Active: false},
	}}
	students := &mockAuthStudentRepo{byEmail: map[string]*models.Student{
		"alan@example.com": {ID: "s1", Email: "alan@example.com", PasswordHash: hashPassword(t, "secret2"), Active: true},
	}}
	svc := NewAuthService(sessions, teachers, students, nil, NewMetricsService(), nil, AuthConfig{SessionTTL: time.Hour})
	return svc, sessions
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, sessions := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "alan@example.com", Password: "secret2", UserType: models.UserTypeStudent})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.UserID)
	assert.Equal(t, models.UserTypeStudent, resp.UserType)
	assert.Len(t, resp.Token, 43)
	require.Len(t, sessions.rows, 1)
	assert.Equal(t, sessions.rows[0].CreatedAt.Add(time.Hour), resp.ExpiresAt)
}

func TestAuthServiceLoginFailures(t *testing.T) {
	svc, sessions := newTestAuthService(t)

	cases := []models.LoginRequest{
		{Email: "ada@example.com", Password: "wrong-pass", UserType: models.UserTypeTeacher},
		{Email: "gone@example.com", Password: "secret1", UserType: models.UserTypeTeacher},
		{Email: "nobody@example.com", Password: "secret1", UserType: models.UserTypeTeacher},
		{Email: "ada@example.com", Password: "secret1", UserType: models.UserTypeStudent},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials), req.Email)
	}
	assert.Empty(t, sessions.rows)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "secret1", UserType: "admin"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAuthServiceIssueCreatesDistinctSessions(t *testing.T) {
	svc, sessions := newTestAuthService(t)

	first, err := svc.Issue(context.Background(), "t1", models.UserTypeTeacher, 0)
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), "t1", models.UserTypeTeacher, 0)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Len(t, sessions.rows, 2)

	for _, s := range []*models.Session{first, second} {
		resolved, err := svc.Resolve(context.Background(), s.Token)
		require.NoError(t, err)
		assert.Equal(t, "t1", resolved.UserID)
	}
}

func TestAuthServiceResolveExpiryBoundary(t *testing.T) {
	svc, _ := newTestAuthService(t)
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	session, err := svc.Issue(context.Background(), "s1", models.UserTypeStudent, time.Second)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(time.Second) }
	_, err = svc.Resolve(context.Background(), session.Token)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(time.Second + time.Millisecond) }
	_, err = svc.Resolve(context.Background(), session.Token)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceResolveUnknownToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Resolve(context.Background(), "does-not-exist")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	_, err = svc.Resolve(context.Background(), "")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
