package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mentoria-api/internal/models"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

const sessionTokenBytes = 32

type sessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindLatestByToken(ctx context.Context, token string) (*models.Session, error)
}

type authTeacherRepository interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.Teacher, error)
}

type authStudentRepository interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.Student, error)
}

// AuthConfig defines configuration for session issuance.
type AuthConfig struct {
	SessionTTL time.Duration
}

// AuthService issues and resolves opaque bearer sessions.
type AuthService struct {
	sessions  sessionRepository
	teachers  authTeacherRepository
	students  authStudentRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(sessions sessionRepository, teachers authTeacherRepository, students authStudentRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 24 * time.Hour
	}
	return &AuthService{
		sessions:  sessions,
		teachers:  teachers,
		students:  students,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login verifies credentials against the active account of the requested type and issues a session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	userID, passwordHash, err := s.lookupCredentials(ctx, req.UserType, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	session, err := s.Issue(ctx, userID, req.UserType, 0)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:     session.Token,
		UserID:    session.UserID,
		UserType:  session.UserType,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *AuthService) lookupCredentials(ctx context.Context, userType models.UserType, email string) (string, string, error) {
	switch userType {
	case models.UserTypeTeacher:
		teacher, err := s.teachers.FindActiveByEmail(ctx, email)
		if err != nil {
			return "", "", err
		}
		return teacher.ID, teacher.PasswordHash, nil
	case models.UserTypeStudent:
		student, err := s.students.FindActiveByEmail(ctx, email)
		if err != nil {
			return "", "", err
		}
		return student.ID, student.PasswordHash, nil
	default:
		return "", "", sql.ErrNoRows
	}
}

// Issue persists a new session for the user. A non-positive ttl falls back to the configured TTL.
func (s *AuthService) Issue(ctx context.Context, userID string, userType models.UserType, ttl time.Duration) (*models.Session, error) {
	if ttl <= 0 {
		ttl = s.config.SessionTTL
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	now := s.now()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		UserType:  userType,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	s.metrics.SessionIssued(userType)
	s.logger.Debug("session issued", zap.String("user_id", userID), zap.String("user_type", string(userType)))
	return session, nil
}

// Resolve returns the newest session for token, failing with ErrUnauthorized when it is unknown or expired.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token")
	}

	session, err := s.sessions.FindLatestByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	if session.Expired(s.now()) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return session, nil
}

func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
