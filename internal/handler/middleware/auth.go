package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"salepoint/internal/domain/worker"
	"salepoint/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	jwtService *jwt.Service
}

const (
	ctxWorkerIDKey   = "worker_id"
	ctxWorkerRoleKey = "worker_role"
)

var roleHierarchy = map[worker.Role]int{
	worker.RoleWorker: 1,
	worker.RoleAdmin:  2,
}

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxWorkerIDKey, claims.WorkerID)
		c.Set(ctxWorkerRoleKey, worker.Role(claims.Role))
		c.Set("jwt_claims", map[string]any{
			"worker_id": claims.WorkerID.String(),
			"role":      claims.Role,
		})
		c.Next()
	}
}

func hasMinimumRole(workerRole, minRole worker.Role) bool {
	workerLevel, workerExists := roleHierarchy[workerRole]
	minLevel, minExists := roleHierarchy[minRole]
	return workerExists && minExists && workerLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole worker.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetWorkerRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetWorkerID(c *gin.Context) (uuid.UUID, bool) {
	workerID, exists := c.Get(ctxWorkerIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := workerID.(uuid.UUID)
	return id, ok
}

func GetWorkerRole(c *gin.Context) (worker.Role, bool) {
	workerRole, exists := c.Get(ctxWorkerRoleKey)
	if !exists {
		return "", false
	}

	role, ok := workerRole.(worker.Role)
	return role, ok
}
