package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/internal/service"
	"github.com/noah-isme/enrollplus-admin/pkg/format"
	"github.com/noah-isme/enrollplus-admin/pkg/response"
)

// TransactionHandler serves the read-only transaction log.
type TransactionHandler struct {
	service *service.TransactionService
	query   ListQuery
}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler(svc *service.TransactionService, query ListQuery) *TransactionHandler {
	return &TransactionHandler{service: svc, query: query}
}

// List godoc
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Param search query string false "Search student, student id, reference or course"
// @Param type query string false "payment, document or enrollment"
// @Param status query string false "completed, pending, rejected or approved"
// @Param range query string false "today, week, month or quarter"
// @Param sort_by query string false "date, amount, studentName, status or type"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	params, err := listParams(c, h.service.Config(), h.query)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, view.Items, view.Window, map[string]interface{}{"params": view.Params})
}

// Totals godoc
// @Summary Transaction totals
// @Description Summary over every transaction matching the filters, across all pages
// @Tags Transactions
// @Produce json
// @Param search query string false "Search term"
// @Param type query string false "Type filter"
// @Param status query string false "Status filter"
// @Param range query string false "Date range"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /transactions/totals [get]
func (h *TransactionHandler) Totals(c *gin.Context) {
	params, err := listParams(c, h.service.Config(), h.query)
	if err != nil {
		response.Error(c, err)
		return
	}
	totals, err := h.service.Totals(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, totals, nil, map[string]interface{}{
		"formatted_amount": format.Currency(totals.TotalAmount),
	})
}

// Get godoc
// @Summary Get transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, txn, nil)
}
