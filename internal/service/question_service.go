package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/internal/models"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

const questionCachePrefix = "question:detail:"

type questionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Question, error)
	FindRandom(ctx context.Context) (*models.Question, error)
}

type answerRecorder interface {
	Create(ctx context.Context, answer *models.AnsweredResponse) error
}

// QuestionService serves rendered questions and records scored answers.
type QuestionService struct {
	repo    questionRepository
	answers answerRecorder
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewQuestionService constructs a QuestionService. cache may be nil.
func NewQuestionService(repo questionRepository, answers answerRecorder, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{repo: repo, answers: answers, cache: cache, metrics: metrics, logger: logger}
}

func questionCacheKey(id string) string {
	return questionCachePrefix + id
}

// Random renders one question picked at random.
func (s *QuestionService) Random(ctx context.Context) (*dto.QuestionDetail, error) {
	q, err := s.repo.FindRandom(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no questions available")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load question")
	}
	detail := RenderDetail(q)
	return &detail, nil
}

// Detail renders the question with id, going through the question cache when enabled.
func (s *QuestionService) Detail(ctx context.Context, id string) (*dto.QuestionDetail, error) {
	var cached dto.QuestionDetail
	value, err := s.cache.Remember(ctx, questionCacheKey(id), &cached, func() (interface{}, error) {
		q, err := s.find(ctx, id)
		if err != nil {
			return nil, err
		}
		detail := RenderDetail(q)
		return &detail, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*dto.QuestionDetail), nil
}

// Answer scores letter against the question and appends the response. Every call adds a row.
func (s *QuestionService) Answer(ctx context.Context, studentID, questionID, letter string) (*dto.AnswerQuestionResult, error) {
	q, err := s.find(ctx, questionID)
	if err != nil {
		return nil, err
	}

	result, err := Score(q, letter)
	if err != nil {
		return nil, err
	}

	response := &models.AnsweredResponse{
		StudentID:         studentID,
		QuestionID:        &q.ID,
		ChosenAlternative: result.Alternative,
		Correct:           result.Correct,
	}
	if err := s.answers.Create(ctx, response); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record answer")
	}

	s.metrics.AnswerRecorded(result.Correct)
	return &dto.AnswerQuestionResult{
		ResponseID:         response.ID,
		Correct:            result.Correct,
		CorrectAlternative: result.CorrectAlternative,
	}, nil
}

func (s *QuestionService) find(ctx context.Context, id string) (*models.Question, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "question not found")
	}
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "question not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load question")
	}
	return q, nil
}
