package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication / Authorization ────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrForbidden          ErrCode = "FORBIDDEN"
	ErrNotExamAuthor      ErrCode = "NOT_EXAM_AUTHOR"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation       ErrCode = "VALIDATION_ERROR"
	ErrInvalidID        ErrCode = "INVALID_ID"
	ErrInvalidPayload   ErrCode = "INVALID_PAYLOAD"
	ErrContentViolation ErrCode = "CONTENT_VALIDATION_FAILED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "VERSION_CONFLICT"

	// ─── Moderation workflow ───────────────────────────────────────────
	ErrInvalidTransition ErrCode = "INVALID_STATE_TRANSITION"
	ErrMissingReason     ErrCode = "MISSING_REASON"
	ErrCannotDeletePub   ErrCode = "CANNOT_DELETE_PUBLISHED"
	ErrIndexOutOfRange   ErrCode = "INDEX_OUT_OF_RANGE"
	ErrPoolEmpty         ErrCode = "SELECTION_POOL_EMPTY"
	ErrAdminReviewOnly   ErrCode = "ADMIN_REVIEW_ONLY"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// Workflow errors usually carry a more specific detail string alongside.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrNotExamAuthor:
		return "You are not the author of this exam."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrContentViolation:
		return "The exam content violates one or more format rules."

	case ErrNotFound:
		return "The requested resource was not found."
	case ErrConflict:
		return "The exam was modified by someone else. Reload and try again."

	case ErrInvalidTransition:
		return "This action is not allowed in the exam's current status."
	case ErrMissingReason:
		return "A rejection requires a non-empty reason."
	case ErrCannotDeletePub:
		return "An approved or published exam cannot be deleted. Unpublish and withdraw it first."
	case ErrIndexOutOfRange:
		return "The part or question index does not exist."
	case ErrPoolEmpty:
		return "No published exams match the requested skill and level."
	case ErrAdminReviewOnly:
		return "Only administrators can review submitted exams."

	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "The file type is not supported."
	case ErrFileTooLarge:
		return "The file exceeds the size limit."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
