package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// respondError emits the failure envelope every error shares.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"message": message,
		"success": false,
	})
}

// RespondServiceError converts a service-layer error into the HTTP status and
// client-facing message of the response envelope. Validation failures collapse
// to a blanket message when everything missing is a required field, matching
// what the front end expects; unexpected errors are logged with full detail
// and surface as a generic 500.
func (h *BaseHandler) RespondServiceError(c *gin.Context, err error, requiredMsg string) {
	var verrs validator.ValidationErrors
	var uploadErr *services.UploadError

	switch {
	case errors.As(err, &verrs):
		respondError(c, http.StatusBadRequest, validationMessage(verrs, requiredMsg))
	case errors.Is(err, services.ErrFileRequired):
		respondError(c, http.StatusBadRequest, "No file uploaded")
	case errors.Is(err, services.ErrEmailTaken):
		respondError(c, http.StatusBadRequest, "User already exists with this email")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusBadRequest, "Incorrect email or password.")
	case errors.Is(err, services.ErrRoleMismatch):
		respondError(c, http.StatusBadRequest, "Account doesn't exist with current role.")
	case errors.Is(err, services.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found.")
	case errors.As(err, &uploadErr):
		h.LogError(c, err, "media upload failed")
		respondError(c, http.StatusInternalServerError, "Failed to upload file")
	default:
		h.LogError(c, err, "unexpected error")
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage keeps the original blanket wording when the only problem
// is absent required fields, and reports the first concrete rule otherwise.
func validationMessage(verrs validator.ValidationErrors, requiredMsg string) string {
	if len(verrs) == 0 {
		return requiredMsg
	}
	for _, ve := range verrs {
		if ve.Tag != "required" {
			return ve.Message
		}
	}
	return requiredMsg
}
