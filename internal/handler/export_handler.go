package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
	"github.com/noah-isme/enrollplus-admin/pkg/response"
)

// paramsReader parses one table's list query.
type paramsReader func(c *gin.Context) (listing.Params, error)

// ExportHandler streams CSV and PDF downloads of a table's current list.
type ExportHandler struct {
	service *service.ExportService
	readers map[string]paramsReader
}

// NewExportHandler creates an export handler for the registered tables.
func NewExportHandler(svc *service.ExportService, query ListQuery, users *service.UserService, courses *service.CourseService, products *service.ProductService, transactions *service.TransactionService) *ExportHandler {
	return &ExportHandler{
		service: svc,
		readers: map[string]paramsReader{
			service.TableUsers:        func(c *gin.Context) (listing.Params, error) { return listParams(c, users.Config(), query) },
			service.TableCourses:      func(c *gin.Context) (listing.Params, error) { return listParams(c, courses.Config(), query) },
			service.TableProducts:     func(c *gin.Context) (listing.Params, error) { return listParams(c, products.Config(), query) },
			service.TableTransactions: func(c *gin.Context) (listing.Params, error) { return listParams(c, transactions.Config(), query) },
		},
	}
}

// Export returns a handler exporting table.
//
// @Summary Export table
// @Description Every row matching the filters and sort, across all pages
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param table path string true "users, courses, products or transactions"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /{table}/export [get]
func (h *ExportHandler) Export(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		read, ok := h.readers[table]
		if !ok {
			response.Error(c, appErrors.ErrUnknownTable)
			return
		}
		params, err := read(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		file, err := h.service.Export(c.Request.Context(), table, params, c.Query("format"))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		c.Header("X-Export-Rows", strconv.Itoa(file.Rows))
		c.Data(http.StatusOK, file.ContentType, file.Body)
	}
}
