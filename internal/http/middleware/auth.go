package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devffery/task-two/internal/domain"
	"github.com/devffery/task-two/internal/service"
)

const currentUserKey = "currentUser"

// Auth validates the Authorization header and attaches the resolved user.
type Auth struct {
	Identity *service.IdentityService
}

// RequireUser ensures the request carries a valid bearer token.
func (m *Auth) RequireUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abortUnauthenticated(c)
		return
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		abortUnauthenticated(c)
		return
	}

	user, err := m.Identity.Authenticate(c.Request.Context(), parts[1])
	if err != nil {
		abortUnauthenticated(c)
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// GetCurrentUser exposes the authenticated user to handlers.
func GetCurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":     "Unauthorized",
		"message":    "Authentication required",
		"statusCode": http.StatusUnauthorized,
	})
}
