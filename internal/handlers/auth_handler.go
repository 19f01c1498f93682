package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
)

const sessionCookieName = "token"

// AuthHandler exposes registration, login, logout, and profile update.
type AuthHandler struct {
	BaseHandler
	authService   services.AuthService
	cookieMaxAge  int
	secureCookies bool
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger, cookieMaxAge int, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   NewBaseHandler(logger),
		authService:   authService,
		cookieMaxAge:  cookieMaxAge,
		secureCookies: secureCookies,
	}
}

// Register handles POST /users/register (multipart form + one file field).
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	file, err := readFormFile(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to process file")
		return
	}

	h.LogRequest(c, "registering user", "email", req.Email, "role", req.Role)

	if _, err := h.authService.Register(c.Request.Context(), &req, file); err != nil {
		h.RespondServiceError(c, err, "All fields are required")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"success": true,
	})
}

// Login handles POST /users/login. On success the session credential is
// attached as an HttpOnly, SameSite=Strict cookie with a max-age matching the
// token validity.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Something is missing")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondServiceError(c, err, "Something is missing")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, result.Token, h.cookieMaxAge, "/", "", h.secureCookies, true)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome back %s", result.User.FullName),
		"success": true,
		"user":    result.User,
	})
}

// Logout handles POST /users/logout. It only clears the cookie, so calling it
// without an active session is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.secureCookies, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully.",
		"success": true,
	})
}

// UpdateProfile handles POST /users/profile/update (multipart, optional file).
// The authenticated user id comes from the session middleware.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	req := services.UpdateProfileRequest{
		FullName:    formValue(c, "fullname"),
		Email:       formValue(c, "email"),
		PhoneNumber: formValue(c, "phoneNumber"),
		Bio:         formValue(c, "bio"),
		Skills:      formValue(c, "skills"),
	}

	file, err := readFormFile(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to process file")
		return
	}

	h.LogRequest(c, "updating profile", "user_id", userID)

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, &req, file)
	if err != nil {
		h.RespondServiceError(c, err, "All fields are required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"success": true,
		"user":    user,
	})
}

// formValue returns a pointer only when the field was actually supplied,
// preserving the absent/present distinction partial updates rely on.
func formValue(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

// readFormFile decodes the optional file attachment. A missing file is not an
// error here; the service decides whether one was required.
func readFormFile(c *gin.Context) (*services.FileUpload, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return decodeFile(header)
}

func decodeFile(header *multipart.FileHeader) (*services.FileUpload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &services.FileUpload{Data: data, Filename: header.Filename}, nil
}
