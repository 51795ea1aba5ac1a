package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/internal/models"
	"github.com/noah-isme/mentoria-api/pkg/database"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

const removedQuestionTitle = "question removed"

type teacherRepository interface {
	FindActiveByID(ctx context.Context, id string) (*models.Teacher, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByTag(ctx context.Context, tag string) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Deactivate(ctx context.Context, id string) error
}

type studentSummaryReader interface {
	ListSummariesByTeacher(ctx context.Context, teacherID string) ([]models.StudentSummary, error)
}

type linkRepository interface {
	Exists(ctx context.Context, studentID, teacherID string) (bool, error)
	Create(ctx context.Context, link *models.StudentTeacherLink) error
}

type answerHistoryReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.AnswerRecord, error)
}

// TeacherService exposes teacher account and classroom operations.
type TeacherService struct {
	repo      teacherRepository
	students  studentSummaryReader
	links     linkRepository
	answers   answerHistoryReader
	tags      *TagGenerator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, students studentSummaryReader, links linkRepository, answers answerHistoryReader, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		repo:      repo,
		students:  students,
		links:     links,
		answers:   answers,
		tags:      NewTagGenerator(repo),
		validator: validate,
		logger:    logger,
	}
}

// Register creates a teacher account with a fresh join tag.
func (s *TeacherService) Register(ctx context.Context, req dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	tag, err := s.tags.Generate(ctx)
	if err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		Name:         strings.TrimSpace(req.Name),
		Institution:  strings.TrimSpace(req.Institution),
		Email:        req.Email,
		PasswordHash: string(hash),
		Tag:          tag,
		Active:       true,
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email or tag already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}

	s.logger.Info("teacher registered", zap.String("teacher_id", teacher.ID))
	resp := ToTeacherResponse(teacher)
	return &resp, nil
}

// Get returns the active teacher or ErrNotFound.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// Tag returns the teacher's join tag.
func (s *TeacherService) Tag(ctx context.Context, id string) (*dto.TagResponse, error) {
	teacher, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TagResponse{Tag: teacher.Tag}, nil
}

// Deactivate soft-deletes the teacher. Sessions stay valid but role checks start failing.
func (s *TeacherService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate teacher")
	}
	s.logger.Info("teacher deactivated", zap.String("teacher_id", id))
	return nil
}

// ListStudents returns the active linked students with their answer totals.
func (s *TeacherService) ListStudents(ctx context.Context, teacherID string) ([]models.StudentSummary, error) {
	summaries, err := s.students.ListSummariesByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if summaries == nil {
		summaries = []models.StudentSummary{}
	}
	return summaries, nil
}

// StudentAnswers lists a linked student's answers, newest first.
func (s *TeacherService) StudentAnswers(ctx context.Context, teacherID, studentID string) ([]dto.StudentAnswerDetail, error) {
	if _, err := uuid.Parse(studentID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found for this teacher")
	}
	linked, err := s.links.Exists(ctx, studentID, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student link")
	}
	if !linked {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found for this teacher")
	}

	records, err := s.answers.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list answers")
	}

	details := make([]dto.StudentAnswerDetail, 0, len(records))
	for _, rec := range records {
		details = append(details, toStudentAnswerDetail(rec))
	}
	return details, nil
}

func toStudentAnswerDetail(rec models.AnswerRecord) dto.StudentAnswerDetail {
	detail := dto.StudentAnswerDetail{
		ID:                rec.ID,
		QuestionID:        rec.QuestionID,
		QuestionTitle:     removedQuestionTitle,
		ChosenAlternative: rec.ChosenAlternative,
		Correct:           rec.Correct,
		RespondedAt:       rec.RespondedAt,
	}
	if rec.QuestionTitle == nil {
		return detail
	}
	detail.QuestionTitle = *rec.QuestionTitle
	detail.CorrectAlternative = rec.CorrectAlternative
	if rec.QuestionIndex != nil {
		detail.QuestionIndex = *rec.QuestionIndex
	}
	if rec.QuestionYear != nil {
		detail.QuestionYear = *rec.QuestionYear
	}
	return detail
}

// ToTeacherResponse maps a teacher to its public view.
func ToTeacherResponse(t *models.Teacher) dto.TeacherResponse {
	return dto.TeacherResponse{ID: t.ID, Name: t.Name, Institution: t.Institution, Email: t.Email, Tag: t.Tag}
}
