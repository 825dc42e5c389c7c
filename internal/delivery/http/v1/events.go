package v1

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-widget/internal/dom"
	"github.com/adanyl0v/go-todo-widget/internal/session"
	"github.com/adanyl0v/go-todo-widget/internal/view"
)

type eventRequest struct {
	Type   string              `json:"type" binding:"required,oneof=click keypress input"`
	Key    string              `json:"key" binding:"max=32"`
	Path   []map[string]string `json:"path" binding:"required,min=1,max=64"`
	Values map[string]string   `json:"values"`
}

func (r eventRequest) event() dom.Event {
	path := make([]dom.Element, len(r.Path))
	for i, attrs := range r.Path {
		path[i] = dom.Element(attrs)
	}
	return dom.Event{
		Type: dom.EventType(r.Type),
		Key:  r.Key,
		Path: path,
	}
}

type snapshotResponse struct {
	dom.Snapshot
	Unsaved bool `json:"unsaved"`
}

func (h *handlerImpl) HandleEvent(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		h.logger.Error().Msg("no session id found in context")
		abort(c, errNoSession)
		return
	}

	var req eventRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, fmt.Errorf("%w: %w", errInvalidRequestBody, err))
		return
	}

	var resp snapshotResponse
	err = h.sessions.Do(c, sessionID, func(s *session.Session) error {
		resp.Snapshot = s.Dispatch(c, req.event(), req.Values)
		resp.Unsaved = s.Unsaved()
		return nil
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to dispatch event")
		abort(c, err)
		return
	}
	h.logger.Debug().
		Str("session_id", sessionID).
		Str("type", req.Type).
		Int("notices", len(resp.Notices)).
		Msg("dispatched event")

	c.JSON(http.StatusOK, resp)
}

func (h *handlerImpl) HandleIndex(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		h.logger.Error().Msg("no session id found in context")
		abort(c, errNoSession)
		return
	}

	var (
		snap    dom.Snapshot
		unsaved bool
	)
	err := h.sessions.Do(c, sessionID, func(s *session.Session) error {
		snap = s.Snapshot()
		unsaved = s.Unsaved()
		return nil
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("failed to load session")
		c.HTML(http.StatusInternalServerError, pageTemplateName, gin.H{"error": "Failed to load tasks"})
		return
	}

	// Painted contents come from the view package, which escapes
	// every text node and attribute.
	overlays := make([]template.HTML, len(snap.Overlays))
	for i, o := range snap.Overlays {
		overlays[i] = template.HTML(o.HTML)
	}
	flagged := make(map[string]bool, len(snap.Flagged))
	for _, m := range snap.Flagged {
		flagged[m] = true
	}

	c.HTML(http.StatusOK, pageTemplateName, gin.H{
		"list":       template.HTML(snap.Contents[view.MarkerList]),
		"emptyState": template.HTML(snap.Contents[view.MarkerEmptyState]),
		"overlays":   overlays,
		"title":      snap.Values[view.MarkerTitleInput],
		"about":      snap.Values[view.MarkerAboutInput],
		"flagged":    flagged,
		"notices":    snap.Notices,
		"unsaved":    unsaved,
	})
}
