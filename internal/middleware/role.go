package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentoria-api/internal/models"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
	"github.com/noah-isme/mentoria-api/pkg/response"
)

const (
	// ContextTeacherKey stores the active *models.Teacher behind the session.
	ContextTeacherKey = "currentTeacher"
	// ContextStudentKey stores the active *models.Student behind the session.
	ContextStudentKey = "currentStudent"
)

// TeacherLoader returns active teachers, failing with a not-found error otherwise.
type TeacherLoader interface {
	Get(ctx context.Context, id string) (*models.Teacher, error)
}

// StudentLoader returns active students, failing with a not-found error otherwise.
type StudentLoader interface {
	Get(ctx context.Context, id string) (*models.Student, error)
}

// RequireTeacher admits teacher sessions whose account is still active. Must run after Session.
func RequireTeacher(loader TeacherLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUserType(c, models.UserTypeTeacher, "teacher access only")
		if !ok {
			return
		}
		teacher, err := loader.Get(c.Request.Context(), user.ID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextTeacherKey, teacher)
		c.Next()
	}
}

// RequireStudent admits student sessions whose account is still active. Must run after Session.
func RequireStudent(loader StudentLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUserType(c, models.UserTypeStudent, "student access only")
		if !ok {
			return
		}
		student, err := loader.Get(c.Request.Context(), user.ID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextStudentKey, student)
		c.Next()
	}
}

func requireUserType(c *gin.Context, want models.UserType, message string) (*models.CurrentUser, bool) {
	value, exists := c.Get(ContextUserKey)
	user, ok := value.(*models.CurrentUser)
	if !exists || !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		c.Abort()
		return nil, false
	}
	if user.UserType != want {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, message))
		c.Abort()
		return nil, false
	}
	return user, true
}
