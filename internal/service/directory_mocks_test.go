package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/noah-isme/mentoria-api/internal/models"
)

type mockTeacherRepo struct {
	items       map[string]*models.Teacher
	createErr   error
	deactivated []string
}

func newMockTeacherRepo(teachers ...*models.Teacher) *mockTeacherRepo {
	m := &mockTeacherRepo{items: map[string]*models.Teacher{}}
	for _, t := range teachers {
		m.items[t.ID] = t
	}
	return m
}

func (m *mockTeacherRepo) FindActiveByID(ctx context.Context, id string) (*models.Teacher, error) {
	if t, ok := m.items[id]; ok && t.Active {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) FindActiveByTag(ctx context.Context, tag string) (*models.Teacher, error) {
	for _, t := range m.items {
		if t.Tag == tag && t.Active {
			cp := *t
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, t := range m.items {
		if t.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTeacherRepo) ExistsByTag(ctx context.Context, tag string) (bool, error) {
	for _, t := range m.items {
		if t.Tag == tag {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if m.createErr != nil {
		return m.createErr
	}
	teacher.ID = fmt.Sprintf("teacher-%d", len(m.items)+1)
	teacher.CreatedAt = time.Now()
	teacher.UpdatedAt = teacher.CreatedAt
	cp := *teacher
	m.items[teacher.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) Deactivate(ctx context.Context, id string) error {
	if t, ok := m.items[id]; ok {
		t.Active = false
	}
	m.deactivated = append(m.deactivated, id)
	return nil
}

type mockStudentRepo struct {
	items     map[string]*models.Student
	links     *mockLinkRepo
	createErr error
	summaries map[string][]models.StudentSummary
}

func newMockStudentRepo(links *mockLinkRepo, students ...*models.Student) *mockStudentRepo {
	m := &mockStudentRepo{items: map[string]*models.Student{}, links: links}
	for _, s := range students {
		m.items[s.ID] = s
	}
	return m
}

func (m *mockStudentRepo) FindActiveByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.items[id]; ok && s.Active {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, s := range m.items {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) CreateWithTeacher(ctx context.Context, student *models.Student, teacherID string) error {
	if m.createErr != nil {
		return m.createErr
	}
	student.ID = fmt.Sprintf("student-%d", len(m.items)+1)
	cp := *student
	m.items[student.ID] = &cp
	if m.links != nil {
		return m.links.Create(ctx, &models.StudentTeacherLink{StudentID: student.ID, TeacherID: teacherID})
	}
	return nil
}

func (m *mockStudentRepo) ListSummariesByTeacher(ctx context.Context, teacherID string) ([]models.StudentSummary, error) {
	return m.summaries[teacherID], nil
}

type mockLinkRepo struct {
	pairs     map[string]bool
	createErr error
	existsErr error
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{pairs: map[string]bool{}}
}

func (m *mockLinkRepo) Exists(ctx context.Context, studentID, teacherID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.pairs[studentID+"|"+teacherID], nil
}

func (m *mockLinkRepo) Create(ctx context.Context, link *models.StudentTeacherLink) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.pairs[link.StudentID+"|"+link.TeacherID] = true
	return nil
}

type mockAnswerHistory struct {
	records map[string][]models.AnswerRecord
}

func (m *mockAnswerHistory) ListByStudent(ctx context.Context, studentID string) ([]models.AnswerRecord, error) {
	return m.records[studentID], nil
}
