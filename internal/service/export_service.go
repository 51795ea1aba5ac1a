package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/pkg/export"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

var answerReportHeaders = []string{"question_year", "question_index", "question_title", "chosen", "correct_alternative", "correct", "responded_at"}

type studentAnswerLister interface {
	StudentAnswers(ctx context.Context, teacherID, studentID string) ([]dto.StudentAnswerDetail, error)
}

// ExportFile is a rendered report ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders a student's answer history into downloadable files.
type ExportService struct {
	answers studentAnswerLister
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(answers studentAnswerLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{answers: answers, logger: logger, now: time.Now}
}

// StudentAnswers renders the rows of TeacherService.StudentAnswers in the requested format.
func (s *ExportService) StudentAnswers(ctx context.Context, teacherID, studentID, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv, pdf or xlsx")
	}

	details, err := s.answers.StudentAnswers(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}

	renderer, err := export.NewRenderer(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to prepare export")
	}
	content, err := renderer.Render(answerDataset(studentID, details))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("answer report exported",
		zap.String("teacher_id", teacherID),
		zap.String("student_id", studentID),
		zap.String("format", string(format)),
		zap.Int("rows", len(details)),
	)
	return &ExportFile{
		Filename:    fmt.Sprintf("answers-%s-%s.%s", studentID, s.now().UTC().Format("20060102"), format),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

func answerDataset(studentID string, details []dto.StudentAnswerDetail) export.Dataset {
	rows := make([]map[string]string, 0, len(details))
	for _, d := range details {
		correctAlternative := ""
		if d.CorrectAlternative != nil {
			correctAlternative = *d.CorrectAlternative
		}
		rows = append(rows, map[string]string{
			"question_year":       strconv.Itoa(d.QuestionYear),
			"question_index":      strconv.Itoa(d.QuestionIndex),
			"question_title":      d.QuestionTitle,
			"chosen":              d.ChosenAlternative,
			"correct_alternative": correctAlternative,
			"correct":             strconv.FormatBool(d.Correct),
			"responded_at":        d.RespondedAt.UTC().Format(time.RFC3339),
		})
	}
	return export.Dataset{
		Title:   "Answers for student " + studentID,
		Headers: answerReportHeaders,
		Rows:    rows,
	}
}
