package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adanyl0v/go-todo-widget/internal/models"
)

const (
	sessionCookie   = "todo_session"
	sessionIDCtxKey = "session_id"
)

// HandleSessionMiddleware resolves the browser session from its signed
// cookie. A missing, forged or expired cookie starts a new session.
func (h *handlerImpl) HandleSessionMiddleware(c *gin.Context) {
	session, err := h.sessionFromCookie(c)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			h.logger.Warn().
				Err(err).
				Msg("invalid session cookie")
		}

		session, err = h.issueSession(c, uuid.NewString())
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to issue session")
			abort(c, err)
			return
		}
		h.logger.Info().
			Str("session_id", session.ID).
			Msg("started session")
	} else if time.Until(session.ExpiresAt) < h.sessionTTL/2 {
		session, err = h.issueSession(c, session.ID)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to renew session")
			abort(c, err)
			return
		}
		h.logger.Debug().
			Str("session_id", session.ID).
			Msg("renewed session")
	}

	c.Set(sessionIDCtxKey, session.ID)
	c.Next()
}

func (h *handlerImpl) sessionFromCookie(c *gin.Context) (*models.Session, error) {
	token, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, err
	}
	claims, err := h.parseSessionToken(token)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		ID:        claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (h *handlerImpl) issueSession(c *gin.Context, id string) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		ID:        id,
		IssuedAt:  now,
		ExpiresAt: now.Add(h.sessionTTL),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    h.sessionIssuer,
		Subject:   session.ID,
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}).SignedString(h.sessionSigningKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	const secure, httpOnly = false, true
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(h.sessionTTL.Seconds()),
		"/", "", secure, httpOnly)
	return session, nil
}

func (h *handlerImpl) parseSessionToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return h.sessionSigningKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("failed to parse token claims")
	}
	return claims, nil
}

func getSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get(sessionIDCtxKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}
