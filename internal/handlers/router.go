package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	authMiddleware *SessionAuthMiddleware
	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenIssuer,
	logger utils.Logger,
	secureCookies bool,
) *HandlerManager {
	cookieMaxAge := int(tokens.Validity().Seconds())

	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger, cookieMaxAge, secureCookies),
		authMiddleware: NewSessionAuthMiddleware(tokens),
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	users := router.Group("/api/v1/users")
	{
		users.POST("/register", hm.authHandler.Register)
		users.POST("/login", hm.authHandler.Login)
		users.POST("/logout", hm.authHandler.Logout)

		users.POST("/profile/update", hm.authMiddleware.AuthMiddleware(), hm.authHandler.UpdateProfile)
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
