package server

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/mentoria-api/internal/models"
)

type memoryStore struct {
	mu        sync.Mutex
	teachers  map[string]*models.Teacher
	students  map[string]*models.Student
	links     map[[2]string]time.Time
	sessions  []models.Session
	questions map[string]*models.Question
	answers   []models.AnsweredResponse
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		teachers:  map[string]*models.Teacher{},
		students:  map[string]*models.Student{},
		links:     map[[2]string]time.Time{},
		questions: map[string]*models.Question{},
	}
}

type memTeachers struct{ *memoryStore }

func (m memTeachers) find(match func(*models.Teacher) bool) (*models.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teachers {
		if t.Active && match(t) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m memTeachers) FindActiveByID(ctx context.Context, id string) (*models.Teacher, error) {
	return m.find(func(t *models.Teacher) bool { return t.ID == id })
}

func (m memTeachers) FindActiveByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	return m.find(func(t *models.Teacher) bool { return t.Email == email })
}

func (m memTeachers) FindActiveByTag(ctx context.Context, tag string) (*models.Teacher, error) {
	return m.find(func(t *models.Teacher) bool { return t.Tag == tag })
}

func (m memTeachers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teachers {
		if t.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m memTeachers) ExistsByTag(ctx context.Context, tag string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teachers {
		if t.Tag == tag {
			return true, nil
		}
	}
	return false, nil
}

func (m memTeachers) Create(ctx context.Context, teacher *models.Teacher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	teacher.ID = uuid.NewString()
	teacher.CreatedAt = time.Now().UTC()
	teacher.UpdatedAt = teacher.CreatedAt
	cp := *teacher
	m.teachers[teacher.ID] = &cp
	return nil
}

func (m memTeachers) Deactivate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.teachers[id]; ok {
		t.Active = false
	}
	return nil
}

type memStudents struct{ *memoryStore }

func (m memStudents) find(match func(*models.Student) bool) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if s.Active && match(s) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m memStudents) FindActiveByID(ctx context.Context, id string) (*models.Student, error) {
	return m.find(func(s *models.Student) bool { return s.ID == id })
}

func (m memStudents) FindActiveByEmail(ctx context.Context, email string) (*models.Student, error) {
	return m.find(func(s *models.Student) bool { return s.Email == email })
}

func (m memStudents) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m memStudents) CreateWithTeacher(ctx context.Context, student *models.Student, teacherID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	student.ID = uuid.NewString()
	student.CreatedAt = time.Now().UTC()
	student.UpdatedAt = student.CreatedAt
	cp := *student
	m.students[student.ID] = &cp
	m.links[[2]string{student.ID, teacherID}] = student.CreatedAt
	return nil
}

func (m memStudents) ListSummariesByTeacher(ctx context.Context, teacherID string) ([]models.StudentSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StudentSummary
	for key := range m.links {
		if key[1] != teacherID {
			continue
		}
		s, ok := m.students[key[0]]
		if !ok || !s.Active {
			continue
		}
		summary := models.StudentSummary{ID: s.ID, Name: s.Name, Email: s.Email}
		for _, a := range m.answers {
			if a.StudentID == s.ID {
				summary.TotalResponses++
				if a.Correct {
					summary.TotalCorrect++
				}
			}
		}
		summary.TotalWrong = summary.TotalResponses - summary.TotalCorrect
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memLinks struct{ *memoryStore }

func (m memLinks) Exists(ctx context.Context, studentID, teacherID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.links[[2]string{studentID, teacherID}]
	return ok, nil
}

func (m memLinks) Create(ctx context.Context, link *models.StudentTeacherLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[[2]string{link.StudentID, link.TeacherID}] = link.CreatedAt
	return nil
}

type memSessions struct{ *memoryStore }

func (m memSessions) Create(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session.ID = uuid.NewString()
	m.sessions = append(m.sessions, *session)
	return nil
}

func (m memSessions) FindLatestByToken(ctx context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Session
	for i := range m.sessions {
		s := m.sessions[i]
		if s.Token == token && (latest == nil || s.CreatedAt.After(latest.CreatedAt)) {
			latest = &s
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	return latest, nil
}

type memQuestions struct{ *memoryStore }

func (m memQuestions) FindByID(ctx context.Context, id string) (*models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.questions[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m memQuestions) FindRandom(ctx context.Context) (*models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.questions {
		cp := *q
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type memAnswers struct{ *memoryStore }

func (m memAnswers) Create(ctx context.Context, answer *models.AnsweredResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	answer.ID = uuid.NewString()
	answer.CreatedAt = time.Now().UTC()
	m.answers = append(m.answers, *answer)
	return nil
}

func (m memAnswers) ListByStudent(ctx context.Context, studentID string) ([]models.AnswerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AnswerRecord
	for i := len(m.answers) - 1; i >= 0; i-- {
		a := m.answers[i]
		if a.StudentID != studentID {
			continue
		}
		rec := models.AnswerRecord{ID: a.ID, QuestionID: a.QuestionID, ChosenAlternative: a.ChosenAlternative, Correct: a.Correct, RespondedAt: a.CreatedAt}
		if a.QuestionID != nil {
			if q, ok := m.questions[*a.QuestionID]; ok {
				idx, year, title := q.Index, q.Year, q.Title
				rec.QuestionIndex, rec.QuestionYear, rec.QuestionTitle = &idx, &year, &title
				rec.CorrectAlternative = q.CorrectAlternative
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
