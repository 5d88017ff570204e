package api

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/auth"
	"github.com/mohit-756/interview-bot/internal/models"
)

const claimsKey = "claims"

var (
	rolesHR        = []models.Role{models.RoleHR}
	rolesCandidate = []models.Role{models.RoleCandidate}
)

// loggingMiddleware logs one line per request
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// requireRole accepts requests carrying a valid bearer token for one of roles
func (s *Server) requireRole(roles []models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyClaimsFromAuthHeader(c, s.tokens)
		if err != nil {
			s.respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		if !slices.Contains(roles, claims.Role) {
			s.respondError(c, http.StatusForbidden, "Unauthorized")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func verifyClaimsFromAuthHeader(c *gin.Context, tokenMaker *auth.JWTMaker) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header is missing")
	}

	fields := strings.Fields(authHeader)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return nil, fmt.Errorf("invalid authorization header")
	}

	claims, err := tokenMaker.VerifyToken(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// claimsFrom returns the claims stored by requireRole
func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return &auth.Claims{}
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return &auth.Claims{}
	}
	return claims
}
