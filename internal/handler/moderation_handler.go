package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vstepready/vstep-backend/internal/middleware"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/response"
	"github.com/vstepready/vstep-backend/internal/service"
	"github.com/vstepready/vstep-backend/internal/validator"
)

// ModerationHandler handles the reviewer-facing workflow endpoints.
type ModerationHandler struct {
	moderationService *service.ModerationService
}

// NewModerationHandler creates a new ModerationHandler.
func NewModerationHandler(moderationService *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// Pending godoc
// GET /api/v1/moderation/pending
// Returns the review queue, optionally narrowed by skill and level.
func (h *ModerationHandler) Pending(c *gin.Context) {
	var q listQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exams, err := h.moderationService.ListPending(c.Request.Context(),
		model.Skill(normalizeFilterParam(q.Skill)), model.Level(normalizeFilterParam(q.Level)))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	items, pagination := service.Paginate(exams, q.Page, q.PerPage)
	response.SuccessWithPagination(c, http.StatusOK, items, pagination)
}

// Approve godoc
// POST /api/v1/moderation/:id/approve
// Records an approval decision on a pending exam.
func (h *ModerationHandler) Approve(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	exam, err := h.moderationService.Approve(c.Request.Context(), claims.Actor(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// Reject godoc
// POST /api/v1/moderation/:id/reject
// Records a rejection with its mandatory reason.
func (h *ModerationHandler) Reject(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	var req model.RejectRequest
	if fields := validator.BindJSON(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.moderationService.Reject(c.Request.Context(), claims.Actor(), id, req.Reason)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// History godoc
// GET /api/v1/moderation/:id/history
// Returns the full decision ledger for an exam, oldest first.
func (h *ModerationHandler) History(c *gin.Context) {
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	records, err := h.moderationService.History(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, records)
}

// Publish godoc
// POST /api/v1/exams/:id/publish
// Makes an approved exam visible and eligible for random selection.
func (h *ModerationHandler) Publish(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	exam, err := h.moderationService.Publish(c.Request.Context(), claims.Actor(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// Unpublish godoc
// POST /api/v1/exams/:id/unpublish
// Hides a published exam, returning it to approved.
func (h *ModerationHandler) Unpublish(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := parseExamID(c)
	if !ok {
		return
	}

	exam, err := h.moderationService.Unpublish(c.Request.Context(), claims.Actor(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// normalizeFilterParam maps the "all" sentinel to the unfiltered empty value.
func normalizeFilterParam(v string) string {
	if v == service.FilterAll {
		return ""
	}
	return v
}
