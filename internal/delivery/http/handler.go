package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avant-atelier/backend/internal/domain"
	"github.com/avant-atelier/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sessions *usecase.SessionManager
	chat     *usecase.ChatService
}

// NewHandler creates a new HTTP handler
func NewHandler(sessions *usecase.SessionManager, chat *usecase.ChatService) *Handler {
	return &Handler{
		sessions: sessions,
		chat:     chat,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "avant-atelier-backend",
		"version": "1.0.0",
	})
}

// Search handles one keystroke of popup input. The popup passes a session
// id (sid) so expansion state and the staleness guard survive across
// requests; stale queries answer 204 and must not be rendered.
func (h *Handler) Search(c *gin.Context) {
	session := h.sessions.Get(c.Query("sid"))

	view, err := session.Query(c.Request.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, domain.ErrStaleQuery) {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// ExpandSearch toggles the session between preview and expanded
func (h *Handler) ExpandSearch(c *gin.Context) {
	session := h.sessions.Get(c.Query("sid"))
	c.JSON(http.StatusOK, session.ToggleExpand())
}

// CloseSearch drops the session, as when the popup closes with its field
// reset
func (h *Handler) CloseSearch(c *gin.Context) {
	h.sessions.Remove(c.Query("sid"))
	c.Status(http.StatusNoContent)
}

// chatRequest is the body of a chat message
type chatRequest struct {
	Message string `json:"message"`
	K       int    `json:"k"`
}

// Chat answers a storefront question grounded in the catalog
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reply, err := h.chat.Ask(c.Request.Context(), req.Message, req.K)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reply)
}
