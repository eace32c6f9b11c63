package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/interfaces/http/response"
	"seller-panel.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// ActorKey is the context key for the resolved seller
	ActorKey = "actor"
)

// ActorResolver turns a bearer token into the acting seller
type ActorResolver interface {
	Resolve(ctx context.Context, token string) (entities.Actor, error)
}

// AuthMiddleware creates a new authentication middleware
func AuthMiddleware(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.Error(c, domainerrors.Unauthorized("authorization header is required"))
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Error(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Debug(c.Request.Context(), "Authentication rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Error(c, err)
			return
		}

		c.Set(ActorKey, actor)
		ctx := context.WithValue(c.Request.Context(), logger.SellerIDKey, actor.SellerID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActor gets the authenticated seller from context
func GetActor(c *gin.Context) (entities.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return entities.Actor{}, false
	}
	actor, ok := value.(entities.Actor)
	return actor, ok
}
