package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
	"github.com/noah-isme/enrollplus-admin/pkg/response"
)

// CourseHandler handles course offerings.
type CourseHandler struct {
	service *service.CourseService
	query   ListQuery
}

// NewCourseHandler creates a course handler.
func NewCourseHandler(svc *service.CourseService, query ListQuery) *CourseHandler {
	return &CourseHandler{service: svc, query: query}
}

// List godoc
// @Summary List courses
// @Description Filter by enrollment state (open, closed, expired) or category, sort and paginate
// @Tags Courses
// @Produce json
// @Param search query string false "Search code, name or category"
// @Param filter query string false "open, closed, expired or a category"
// @Param sort_by query string false "courseCode, schoolYear, enrollment, price or createdAt"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
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
	response.List(c, h.service.Annotate(view.Items), view.Window, map[string]interface{}{"params": view.Params})
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Add course
// @Description New offerings open for enrollment unless their school year has passed
// @Tags Courses
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param payload body dto.CreateCourseRequest true "New course"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.service.Add(c.Request.Context(), sessionIDFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Close godoc
// @Summary Close enrollment
// @Description Closed courses are unchanged, expired courses close at once, open courses need confirmation
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id}/close [post]
func (h *CourseHandler) Close(c *gin.Context) {
	result, err := h.service.RequestClose(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Outcome == dto.ClosePending {
		response.Accepted(c, result)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Request course deletion
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 202 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	confirmation, err := h.service.RequestDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, confirmation)
}
