package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentoria-api/internal/middleware"
	"github.com/noah-isme/mentoria-api/internal/models"
)

func sessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}

func teacherFromContext(c *gin.Context) *models.Teacher {
	value, exists := c.Get(middleware.ContextTeacherKey)
	if !exists {
		return nil
	}
	teacher, _ := value.(*models.Teacher)
	return teacher
}

func studentFromContext(c *gin.Context) *models.Student {
	value, exists := c.Get(middleware.ContextStudentKey)
	if !exists {
		return nil
	}
	student, _ := value.(*models.Student)
	return student
}
