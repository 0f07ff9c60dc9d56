package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
	"github.com/noah-isme/enrollplus-admin/pkg/response"
)

// SessionHandler manages admin panel sessions and their table views.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// Create godoc
// @Summary Start session
// @Description Creates a session with a fresh view of every table
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest false "Profile overrides"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	session, err := h.service.Init(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Get godoc
// @Summary Get session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// SignOut godoc
// @Summary Request sign-out
// @Description Opens a sign-out confirmation; the session is discarded once it is confirmed
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} response.Envelope
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [delete]
func (h *SessionHandler) SignOut(c *gin.Context) {
	confirmation, err := h.service.RequestSignOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if confirmation == nil {
		response.NoContent(c)
		return
	}
	response.Accepted(c, confirmation)
}

// View godoc
// @Summary Render session view
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param table path string true "users, courses, products or transactions"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id}/views/{table} [get]
func (h *SessionHandler) View(c *gin.Context) {
	result, err := h.service.View(c.Request.Context(), c.Param("id"), c.Param("table"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, result.Items, result.Window, map[string]interface{}{"params": result.Params})
}

// Apply godoc
// @Summary Apply view controls
// @Description Applies search, filters, page size, sort toggle, page and navigation in that order
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param table path string true "users, courses, products or transactions"
// @Param payload body dto.ViewEventRequest true "Control events"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id}/views/{table} [patch]
func (h *SessionHandler) Apply(c *gin.Context) {
	var req dto.ViewEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.ApplyView(c.Request.Context(), c.Param("id"), c.Param("table"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, result.Items, result.Window, map[string]interface{}{"params": result.Params})
}
