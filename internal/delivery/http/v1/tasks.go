package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-widget/internal/models"
	"github.com/adanyl0v/go-todo-widget/internal/session"
)

type getTaskResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	About string `json:"about"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:    task.ID,
		Title: task.Title,
		About: task.About,
	}
}

type getTasksResponse struct {
	Tasks   []getTaskResponse `json:"tasks"`
	Unsaved bool              `json:"unsaved"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		h.logger.Error().Msg("no session id found in context")
		abort(c, errNoSession)
		return
	}

	var (
		tasks   []models.Task
		unsaved bool
	)
	err := h.sessions.Do(c, sessionID, func(s *session.Session) error {
		tasks = s.Tasks()
		unsaved = s.Unsaved()
		return nil
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to load session")
		abort(c, err)
		return
	}

	response := getTasksResponse{
		Tasks:   make([]getTaskResponse, len(tasks)),
		Unsaved: unsaved,
	}
	for i, task := range tasks {
		response.Tasks[i] = newGetTaskResponse(&task)
	}

	h.logger.Debug().
		Int("count", len(tasks)).
		Str("session_id", sessionID).
		Msg("fetched tasks")
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Len()})
}
