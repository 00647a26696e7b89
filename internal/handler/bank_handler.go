package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/response"
	"github.com/vstepready/vstep-backend/internal/service"
	"github.com/vstepready/vstep-backend/internal/validator"
)

// BankHandler handles the read-only exam bank endpoints.
type BankHandler struct {
	bankService *service.BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService *service.BankService) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// List godoc
// GET /api/v1/bank/exams
// Searches, filters and paginates the whole bank.
func (h *BankHandler) List(c *gin.Context) {
	var q listQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exams, pagination, err := h.bankService.Query(c.Request.Context(), service.BankFilter{
		Text:    q.Q,
		Skill:   q.Skill,
		Level:   q.Level,
		Status:  q.Status,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, exams, pagination)
}

// randomQuery narrows the random draw to one pool.
type randomQuery struct {
	Skill string `form:"skill" binding:"required,oneof=reading listening writing speaking"`
	Level string `form:"level" binding:"required,oneof=A2 B1 B2 C1"`
}

// Random godoc
// GET /api/v1/bank/exams/random
// Draws one published exam from the selection pool for a skill and level.
func (h *BankHandler) Random(c *gin.Context) {
	var q randomQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.bankService.RandomPublished(c.Request.Context(), model.Skill(q.Skill), model.Level(q.Level))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}
