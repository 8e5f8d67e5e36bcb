//go:build unit

package api_test

import (
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bearer is any non-empty token; fakeAuth does not verify it.
const bearer = "bearer-token"

// fakeAuth stands in for the auth middleware: requests carrying an
// Authorization header are authenticated as the given user.
func fakeAuth(id uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			middleware.SetActor(c, shared.Actor{ID: id, Role: role})
		}
		c.Next()
	}
}
