package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	// accessTokenParam carries the token on WebSocket handshakes.
	accessTokenParam = "access_token"

	errMissingAuth  = "missing Authorization header"
	errBadAuthShape = "invalid Authorization header format"
	errBadToken     = "invalid or expired token"
)

// userIdMiddleware authenticates "Authorization: Bearer <token>" and stores the
// caller's id for the scoped run queries.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, msg := bearerToken(c.GetHeader("Authorization"))
	if msg != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}
	h.authorize(c, token)
}

// streamAuthMiddleware is userIdMiddleware that also accepts ?access_token=
// when no Authorization header is sent.
func (h *Handler) streamAuthMiddleware(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		if token := strings.TrimSpace(c.Query(accessTokenParam)); token != "" {
			h.authorize(c, token)
			return
		}
	}
	h.userIdMiddleware(c)
}

func (h *Handler) authorize(c *gin.Context, token string) {
	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadToken})
		return
	}
	c.Set(userIDKey, userId)
	c.Next()
}

// bearerToken extracts the token or returns the client-facing reason it could not.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", errMissingAuth
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || scheme != "Bearer" || token == "" {
		return "", errBadAuthShape
	}
	return token, ""
}

// currentUserID returns the id set by the auth middleware, or 0.
func currentUserID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
