package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
	"github.com/noah-isme/enrollplus-admin/pkg/response"
)

// ConfirmationHandler exposes the confirmation dialogs.
type ConfirmationHandler struct {
	service *service.ConfirmationService
}

// NewConfirmationHandler creates a confirmation handler.
func NewConfirmationHandler(svc *service.ConfirmationService) *ConfirmationHandler {
	return &ConfirmationHandler{service: svc}
}

// List godoc
// @Summary List confirmations
// @Tags Confirmations
// @Produce json
// @Param status query string false "PENDING, COMMITTED or ABORTED"
// @Success 200 {object} response.Envelope
// @Router /confirmations [get]
func (h *ConfirmationHandler) List(c *gin.Context) {
	items := h.service.List(c.Request.Context(), models.ConfirmationStatus(c.Query("status")))
	response.JSON(c, http.StatusOK, items, nil, map[string]interface{}{"pending": h.service.Pending()})
}

// Get godoc
// @Summary Get confirmation
// @Tags Confirmations
// @Produce json
// @Param id path string true "Confirmation ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /confirmations/{id} [get]
func (h *ConfirmationHandler) Get(c *gin.Context) {
	confirmation, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, confirmation, nil)
}

// Resolve godoc
// @Summary Resolve confirmation
// @Description confirm commits the pending action, cancel aborts it
// @Tags Confirmations
// @Accept json
// @Produce json
// @Param id path string true "Confirmation ID"
// @Param payload body dto.ResolveConfirmationRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /confirmations/{id} [post]
func (h *ConfirmationHandler) Resolve(c *gin.Context) {
	var req dto.ResolveConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	confirmation, err := h.service.Resolve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, confirmation, nil)
}
