package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/response"
	"github.com/vstepready/vstep-backend/internal/service"
)

// writeDomainError maps domain errors to API error codes in one place so
// every handler reports the same condition the same way.
func writeDomainError(c *gin.Context, err error) {
	var (
		validation *examerr.ValidationFailed
		transition *examerr.InvalidStateTransition
		indexErr   *examerr.IndexOutOfRange
	)

	switch {
	case errors.Is(err, examerr.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, examerr.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, examerr.ErrMissingReason):
		response.Fail(c, http.StatusBadRequest, response.ErrMissingReason)
	case errors.Is(err, examerr.ErrCannotDeletePublished):
		response.Fail(c, http.StatusConflict, response.ErrCannotDeletePub)
	case errors.Is(err, examerr.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrAdminReviewOnly)
	case errors.Is(err, service.ErrNotExamAuthor):
		response.Fail(c, http.StatusForbidden, response.ErrNotExamAuthor)
	case errors.Is(err, service.ErrPoolEmpty):
		response.Fail(c, http.StatusNotFound, response.ErrPoolEmpty)
	case errors.As(err, &validation):
		response.FailWithViolations(c, http.StatusUnprocessableEntity, response.ErrContentViolation, validation.Violations)
	case errors.As(err, &transition):
		response.FailWithDetail(c, http.StatusConflict, response.ErrInvalidTransition, transition.Error())
	case errors.As(err, &indexErr):
		response.FailWithDetail(c, http.StatusBadRequest, response.ErrIndexOutOfRange, indexErr.Error())
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseExamID parses the :id path param. On failure it writes the error
// response and returns false.
func parseExamID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
