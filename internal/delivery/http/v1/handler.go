package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-widget/internal/session"
)

type Handler interface {
	HandleSessionMiddleware(c *gin.Context)

	HandleIndex(c *gin.Context)
	HandleEvent(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleHealth(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	sessions *session.Manager

	sessionIssuer     string
	sessionSigningKey []byte
	sessionTTL        time.Duration
}

func New(
	logger zerolog.Logger,
	sessions *session.Manager,
	sessionIssuer string,
	sessionSigningKey string,
	sessionTTL time.Duration,
) Handler {
	return &handlerImpl{
		logger:            logger,
		sessions:          sessions,
		sessionIssuer:     sessionIssuer,
		sessionSigningKey: []byte(sessionSigningKey),
		sessionTTL:        sessionTTL,
	}
}
