package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/internal/service"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
	"github.com/noah-isme/mentoria-api/pkg/response"
)

type studentService interface {
	CreateForTeacher(ctx context.Context, teacherID string, req dto.CreateStudentRequest) (*dto.StudentResponse, error)
	SelfRegister(ctx context.Context, req dto.SelfRegisterStudentRequest) (*dto.StudentResponse, error)
	AttachByTag(ctx context.Context, studentID, tag string) error
}

// StudentHandler exposes student registration and profile endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(svc studentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// Create godoc
// @Summary Create a student linked to the current teacher
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	teacher := teacherFromContext(c)
	if teacher == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	student, err := h.service.CreateForTeacher(c.Request.Context(), teacher.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// SelfRegister godoc
// @Summary Register a student with a teacher tag
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.SelfRegisterStudentRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/self-register [post]
func (h *StudentHandler) SelfRegister(c *gin.Context) {
	var req dto.SelfRegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}
	student, err := h.service.SelfRegister(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Me godoc
// @Summary Current student profile
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/me [get]
func (h *StudentHandler) Me(c *gin.Context) {
	student := studentFromContext(c)
	if student == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.OK(c, service.ToStudentResponse(student))
}

// AttachTag godoc
// @Summary Link the current student to another teacher
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.AttachTagRequest true "Tag payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/me/tags [post]
func (h *StudentHandler) AttachTag(c *gin.Context) {
	student := studentFromContext(c)
	if student == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.AttachTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid tag payload"))
		return
	}
	if err := h.service.AttachByTag(c.Request.Context(), student.ID, req.TeacherTag); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MessageResponse{Message: "teacher tag added"})
}
