package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/internal/models"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

func newTestTeacherService(teachers *mockTeacherRepo, students *mockStudentRepo, links *mockLinkRepo, answers *mockAnswerHistory) *TeacherService {
	return NewTeacherService(teachers, students, links, answers, nil, zap.NewNop())
}

func TestTeacherServiceRegister(t *testing.T) {
	teachers := newMockTeacherRepo()
	svc := newTestTeacherService(teachers, newMockStudentRepo(nil), newMockLinkRepo(), &mockAnswerHistory{})

	resp, err := svc.Register(context.Background(), dto.CreateTeacherRequest{
		Name: "Ada", Institution: "Escola", Email: "ada@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9]{4}$`, resp.Tag)
	assert.Equal(t, "ada@example.com", resp.Email)

	stored := teachers.items[resp.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestTeacherServiceRegisterDuplicateEmail(t *testing.T) {
	teachers := newMockTeacherRepo(&models.Teacher{ID: "t1", Email: "ada@example.com", Tag: "0001", Active: true})
	svc := newTestTeacherService(teachers, newMockStudentRepo(nil), newMockLinkRepo(), &mockAnswerHistory{})

	_, err := svc.Register(context.Background(), dto.CreateTeacherRequest{
		Name: "Ada", Institution: "Escola", Email: "ada@example.com", Password: "secret1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestTeacherServiceRegisterStoreRejectsDuplicate(t *testing.T) {
	teachers := newMockTeacherRepo()
	teachers.createErr = &pq.Error{Code: "23505"}
	svc := newTestTeacherService(teachers, newMockStudentRepo(nil), newMockLinkRepo(), &mockAnswerHistory{})

	_, err := svc.Register(context.Background(), dto.CreateTeacherRequest{
		Name: "Ada", Institution: "Escola", Email: "ada@example.com", Password: "secret1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestTeacherServiceRegisterValidation(t *testing.T) {
	svc := newTestTeacherService(newMockTeacherRepo(), newMockStudentRepo(nil), newMockLinkRepo(), &mockAnswerHistory{})

	_, err := svc.Register(context.Background(), dto.CreateTeacherRequest{Name: "Ada", Email: "not-an-email", Password: "123"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestTeacherServiceTagAndDeactivate(t *testing.T) {
	teachers := newMockTeacherRepo(&models.Teacher{ID: "t1", Email: "ada@example.com", Tag: "0420", Active: true})
	svc := newTestTeacherService(teachers, newMockStudentRepo(nil), newMockLinkRepo(), &mockAnswerHistory{})

	tag, err := svc.Tag(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "0420", tag.Tag)

	require.NoError(t, svc.Deactivate(context.Background(), "t1"))
	assert.Equal(t, []string{"t1"}, teachers.deactivated)

	_, err = svc.Get(context.Background(), "t1")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	err = svc.Deactivate(context.Background(), "t1")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestTeacherServiceListStudentsNeverNil(t *testing.T) {
	svc := newTestTeacherService(newMockTeacherRepo(), newMockStudentRepo(nil), newMockLinkRepo(), &mockAnswerHistory{})

	list, err := svc.ListStudents(context.Background(), "t1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

const linkedStudentID = "6f1d2c3a-0a9b-4c1e-8f00-000000000001"

func TestTeacherServiceStudentAnswers(t *testing.T) {
	links := newMockLinkRepo()
	links.pairs[linkedStudentID+"|t1"] = true

	title := "Questão 7"
	idx, year := 7, 2021
	correct := "C"
	qid := "q1"
	now := time.Now().UTC()
	answers := &mockAnswerHistory{records: map[string][]models.AnswerRecord{
		linkedStudentID: {
			{ID: "a2", QuestionID: &qid, QuestionIndex: &idx, QuestionYear: &year, QuestionTitle: &title, ChosenAlternative: "B", CorrectAlternative: &correct, RespondedAt: now},
			{ID: "a1", ChosenAlternative: "A", RespondedAt: now.Add(-time.Minute)},
		},
	}}
	svc := newTestTeacherService(newMockTeacherRepo(), newMockStudentRepo(nil), links, answers)

	details, err := svc.StudentAnswers(context.Background(), "t1", linkedStudentID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Questão 7", details[0].QuestionTitle)
	assert.Equal(t, 7, details[0].QuestionIndex)
	assert.Equal(t, "C", *details[0].CorrectAlternative)
	assert.Equal(t, removedQuestionTitle, details[1].QuestionTitle)
	assert.Zero(t, details[1].QuestionIndex)
	assert.Zero(t, details[1].QuestionYear)
	assert.Nil(t, details[1].CorrectAlternative)

	_, err = svc.StudentAnswers(context.Background(), "t1", "6f1d2c3a-0a9b-4c1e-8f00-0000000000aa")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestTeacherServiceStudentAnswersMalformedID(t *testing.T) {
	links := newMockLinkRepo()
	links.existsErr = &pq.Error{Code: "22P02"}
	svc := newTestTeacherService(newMockTeacherRepo(), newMockStudentRepo(nil), links, &mockAnswerHistory{})

	_, err := svc.StudentAnswers(context.Background(), "t1", "abc")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
