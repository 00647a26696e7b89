package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/response"
)

// RequireReviewer gates the moderation surface: only roles with review
// authority may approve, reject, publish or unpublish.
func RequireReviewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !claims.Role.CanReview() {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminReviewOnly)
			return
		}
		c.Next()
	}
}

// RequireAnyRole checks that the JWT carries one of the given roles.
func RequireAnyRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
	}
}
