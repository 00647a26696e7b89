package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vstepready/vstep-backend/internal/middleware"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/response"
	"github.com/vstepready/vstep-backend/internal/service"
	"github.com/vstepready/vstep-backend/internal/validator"
)

// ExamHandler handles the author-facing exam endpoints.
type ExamHandler struct {
	examService *service.ExamService
	bankService *service.BankService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, bankService *service.BankService) *ExamHandler {
	return &ExamHandler{examService: examService, bankService: bankService}
}

// listQuery captures the search/filter/paginate params shared by the author
// list and the bank.
type listQuery struct {
	Q       string `form:"q"`
	Skill   string `form:"skill"`
	Level   string `form:"level"`
	Status  string `form:"status"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=10"`
}

// Create godoc
// POST /api/v1/exams
// Creates a draft exam with the default content skeleton for its skill.
func (h *ExamHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateExamRequest
	if fields := validator.BindJSON(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), claims.Actor(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, exam)
}

// List godoc
// GET /api/v1/exams
// Lists the actor's own exams (admins see all), filtered and paginated.
func (h *ExamHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var q listQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	filter := service.BankFilter{
		Text:    q.Q,
		Skill:   q.Skill,
		Level:   q.Level,
		Status:  q.Status,
		Page:    q.Page,
		PerPage: q.PerPage,
	}
	if !claims.Role.CanReview() {
		filter.AuthorID = claims.UserID
	}

	exams, pagination, err := h.bankService.Query(c.Request.Context(), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, exams, pagination)
}

// Get godoc
// GET /api/v1/exams/:id
// Returns one exam with its moderation history.
func (h *ExamHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), claims.Actor(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// UpdateContent godoc
// PUT /api/v1/exams/:id/content
// Replaces the exam's content wholesale; draft and rejected only.
func (h *ExamHandler) UpdateContent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	var req model.UpdateContentRequest
	if fields := validator.BindJSON(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.UpdateContent(c.Request.Context(), claims.Actor(), id, req.Content)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// AddQuestion godoc
// POST /api/v1/exams/:id/parts/:part/questions
// Appends an empty question to the given part.
func (h *ExamHandler) AddQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	partIndex, err := strconv.Atoi(c.Param("part"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.AddQuestion(c.Request.Context(), claims.Actor(), id, partIndex)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// RemoveQuestion godoc
// DELETE /api/v1/exams/:id/parts/:part/questions/:q
// Removes a question; refuses to empty the part.
func (h *ExamHandler) RemoveQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	partIndex, err := strconv.Atoi(c.Param("part"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	questionIndex, err := strconv.Atoi(c.Param("q"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.RemoveQuestion(c.Request.Context(), claims.Actor(), id, partIndex, questionIndex)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// Submit godoc
// POST /api/v1/exams/:id/submit
// Validates the content and moves the exam to pending review.
func (h *ExamHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	exam, err := h.examService.Submit(c.Request.Context(), claims.Actor(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// Withdraw godoc
// POST /api/v1/exams/:id/withdraw
// Pulls a pending, approved or published exam back to draft.
func (h *ExamHandler) Withdraw(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	exam, err := h.examService.Withdraw(c.Request.Context(), claims.Actor(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// Delete godoc
// DELETE /api/v1/exams/:id
// Destroys an exam; approved and published exams are refused.
func (h *ExamHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), claims.Actor(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Export godoc
// GET /api/v1/exams/:id/export
// Returns the round-trippable aggregate including the moderation ledger.
func (h *ExamHandler) Export(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	exam, err := h.examService.Export(c.Request.Context(), claims.Actor(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// Import godoc
// POST /api/v1/exams/import
// Creates a new draft from an exported exam; the importer becomes the author.
func (h *ExamHandler) Import(c *gin.Context) {
	claims := middleware.GetClaims(c)

	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	exam, err := h.examService.Import(c.Request.Context(), claims.Actor(), raw)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, exam)
}
