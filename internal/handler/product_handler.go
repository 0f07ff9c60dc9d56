package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
	"github.com/noah-isme/enrollplus-admin/pkg/response"
)

// ProductHandler handles the product catalogue.
type ProductHandler struct {
	service *service.ProductService
	query   ListQuery
}

// NewProductHandler creates a product handler.
func NewProductHandler(svc *service.ProductService, query ListQuery) *ProductHandler {
	return &ProductHandler{service: svc, query: query}
}

// List godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Param search query string false "Search name, category or id"
// @Param category query string false "Category filter"
// @Param sort_by query string false "name, category, price, stock or sales"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
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

// Get godoc
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, product, nil)
}

// Create godoc
// @Summary Add product
// @Tags Products
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param payload body dto.CreateProductRequest true "New product"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	product, err := h.service.Add(c.Request.Context(), sessionIDFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, product)
}

// Update godoc
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param payload body dto.UpdateProductRequest true "Changed fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	product, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, product, nil)
}

// Delete godoc
// @Summary Request product deletion
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 202 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	confirmation, err := h.service.RequestDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, confirmation)
}
