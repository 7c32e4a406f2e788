package authentication

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
	"github.com/shreejanpandit/doc-appointment-api/logger"
	"github.com/shreejanpandit/doc-appointment-api/models"
)

const identityKey = "identity"

// UserFinder loads a user with its profiles.
type UserFinder interface {
	FindUser(ctx context.Context, id uint) (*models.User, error)
}

// IdentityHandler is a handler that receives the authenticated caller.
type IdentityHandler func(c *gin.Context, identity models.Identity)

// AuthMiddleware resolves the bearer token to an Identity: the signature must
// verify, its session must still exist and its user must still exist.
func AuthMiddleware(tokens *TokenIssuer, sessions *SessionStore, users UserFinder, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			unauthenticated(c)
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			log.WithComponent("auth").WithError(err).Debug("Rejected bearer token")
			unauthenticated(c)
			return
		}

		ctx := c.Request.Context()
		userID, err := sessions.UserID(ctx, claims.ID)
		if errors.Is(err, ErrSessionNotFound) || (err == nil && userID != claims.UserID) {
			unauthenticated(c)
			return
		}
		if err != nil {
			log.WithComponent("auth").WithError(err).Error("Failed to read session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "type": "error"})
			return
		}

		user, err := users.FindUser(ctx, userID)
		if apperrors.Is(err, apperrors.KindNotFound) {
			unauthenticated(c)
			return
		}
		if err != nil {
			log.WithComponent("auth").WithError(err).Error("Failed to load user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "type": "error"})
			return
		}

		c.Set(identityKey, models.Identity{
			User:      *user,
			Doctor:    user.Doctor,
			Patient:   user.Patient,
			SessionID: claims.ID,
		})
		c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}

// WithIdentity adapts an IdentityHandler to gin, rejecting requests that
// did not pass through AuthMiddleware.
func WithIdentity(h IdentityHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			unauthenticated(c)
			return
		}
		h(c, identity)
	}
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated.", "type": "error"})
}
