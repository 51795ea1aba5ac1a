package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentoria-api/internal/dto"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
	"github.com/noah-isme/mentoria-api/pkg/response"
)

type questionService interface {
	Random(ctx context.Context) (*dto.QuestionDetail, error)
	Detail(ctx context.Context, id string) (*dto.QuestionDetail, error)
	Answer(ctx context.Context, studentID, questionID, letter string) (*dto.AnswerQuestionResult, error)
}

// QuestionHandler serves the question bank to students.
type QuestionHandler struct {
	service questionService
}

// NewQuestionHandler constructs a QuestionHandler.
func NewQuestionHandler(svc questionService) *QuestionHandler {
	return &QuestionHandler{service: svc}
}

// Random godoc
// @Summary Fetch a random question
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /questions/random [get]
func (h *QuestionHandler) Random(c *gin.Context) {
	detail, err := h.service.Random(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Detail godoc
// @Summary Fetch a question with file placeholders resolved
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /questions/{id} [get]
func (h *QuestionHandler) Detail(c *gin.Context) {
	detail, err := h.service.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Answer godoc
// @Summary Answer a question
// @Description Records the answer and reveals the correct alternative
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param payload body dto.AnswerQuestionRequest true "Chosen alternative"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /questions/{id}/answer [post]
func (h *QuestionHandler) Answer(c *gin.Context) {
	student := studentFromContext(c)
	if student == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid answer payload"))
		return
	}
	result, err := h.service.Answer(c.Request.Context(), student.ID, c.Param("id"), req.Alternative)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
