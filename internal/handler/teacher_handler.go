package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/internal/models"
	"github.com/noah-isme/mentoria-api/internal/service"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
	"github.com/noah-isme/mentoria-api/pkg/response"
)

type teacherService interface {
	Register(ctx context.Context, req dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	Deactivate(ctx context.Context, id string) error
	ListStudents(ctx context.Context, teacherID string) ([]models.StudentSummary, error)
	StudentAnswers(ctx context.Context, teacherID, studentID string) ([]dto.StudentAnswerDetail, error)
}

type answerExporter interface {
	StudentAnswers(ctx context.Context, teacherID, studentID, format string) (*service.ExportFile, error)
}

// TeacherHandler exposes teacher account and classroom endpoints.
type TeacherHandler struct {
	service  teacherService
	exporter answerExporter
}

// NewTeacherHandler constructs a TeacherHandler.
func NewTeacherHandler(svc teacherService, exporter answerExporter) *TeacherHandler {
	return &TeacherHandler{service: svc, exporter: exporter}
}

// Create godoc
// @Summary Register a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body dto.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	teacher, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// Me godoc
// @Summary Current teacher profile
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teachers/me [get]
func (h *TeacherHandler) Me(c *gin.Context) {
	teacher := teacherFromContext(c)
	if teacher == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.OK(c, service.ToTeacherResponse(teacher))
}

// Tag godoc
// @Summary Current teacher join tag
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teachers/me/tag [get]
func (h *TeacherHandler) Tag(c *gin.Context) {
	teacher := teacherFromContext(c)
	if teacher == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.OK(c, dto.TagResponse{Tag: teacher.Tag})
}

// Deactivate godoc
// @Summary Deactivate the current teacher
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teachers/me [delete]
func (h *TeacherHandler) Deactivate(c *gin.Context) {
	teacher := teacherFromContext(c)
	if teacher == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), teacher.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MessageResponse{Message: "teacher deactivated"})
}

// Students godoc
// @Summary List linked students with answer totals
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teachers/me/students [get]
func (h *TeacherHandler) Students(c *gin.Context) {
	teacher := teacherFromContext(c)
	if teacher == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	students, err := h.service.ListStudents(c.Request.Context(), teacher.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// StudentAnswers godoc
// @Summary List a linked student's answers, newest first
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/students/{id}/answers [get]
func (h *TeacherHandler) StudentAnswers(c *gin.Context) {
	teacher := teacherFromContext(c)
	if teacher == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	answers, err := h.service.StudentAnswers(c.Request.Context(), teacher.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, answers)
}

// ExportStudentAnswers godoc
// @Summary Download a linked student's answers
// @Tags Teachers
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/students/{id}/answers/export [get]
func (h *TeacherHandler) ExportStudentAnswers(c *gin.Context) {
	teacher := teacherFromContext(c)
	if teacher == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	file, err := h.exporter.StudentAnswers(c.Request.Context(), teacher.ID, c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}
