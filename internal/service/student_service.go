package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/internal/models"
	"github.com/noah-isme/mentoria-api/pkg/database"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

type studentRepository interface {
	FindActiveByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateWithTeacher(ctx context.Context, student *models.Student, teacherID string) error
}

type teacherTagReader interface {
	FindActiveByTag(ctx context.Context, tag string) (*models.Teacher, error)
}

// StudentService manages student accounts and their teacher links.
type StudentService struct {
	repo      studentRepository
	teachers  teacherTagReader
	links     linkRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, teachers teacherTagReader, links linkRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, teachers: teachers, links: links, validator: validate, logger: logger}
}

// CreateForTeacher creates a student already linked to teacherID.
func (s *StudentService) CreateForTeacher(ctx context.Context, teacherID string, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	return s.create(ctx, teacherID, req.Name, req.Email, req.Password)
}

// SelfRegister creates a student linked to the teacher owning req.TeacherTag.
func (s *StudentService) SelfRegister(ctx context.Context, req dto.SelfRegisterStudentRequest) (*dto.StudentResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.TeacherTag = strings.TrimSpace(req.TeacherTag)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	teacher, err := s.teacherByTag(ctx, req.TeacherTag)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, teacher.ID, req.Name, req.Email, req.Password)
}

func (s *StudentService) create(ctx context.Context, teacherID, name, email, password string) (*dto.StudentResponse, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := &models.Student{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.repo.CreateWithTeacher(ctx, student, teacherID); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student email already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.logger.Info("student registered", zap.String("student_id", student.ID), zap.String("teacher_id", teacherID))
	resp := ToStudentResponse(student)
	return &resp, nil
}

// Get returns the active student or ErrNotFound.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// AttachByTag links the student to the active teacher owning tag.
func (s *StudentService) AttachByTag(ctx context.Context, studentID, tag string) error {
	req := dto.AttachTagRequest{TeacherTag: strings.TrimSpace(tag)}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher tag")
	}

	teacher, err := s.teacherByTag(ctx, req.TeacherTag)
	if err != nil {
		return err
	}

	linked, err := s.links.Exists(ctx, studentID, teacher.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student link")
	}
	if linked {
		return appErrors.Clone(appErrors.ErrConflict, "tag already linked to this student")
	}

	link := &models.StudentTeacherLink{StudentID: studentID, TeacherID: teacher.ID, CreatedAt: time.Now().UTC()}
	if err := s.links.Create(ctx, link); err != nil {
		if database.IsUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, "tag already linked to this student")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link teacher")
	}
	return nil
}

func (s *StudentService) teacherByTag(ctx context.Context, tag string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindActiveByTag(ctx, tag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher with this tag not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// ToStudentResponse maps a student to its public view.
func ToStudentResponse(s *models.Student) dto.StudentResponse {
	return dto.StudentResponse{ID: s.ID, Name: s.Name, Email: s.Email}
}
