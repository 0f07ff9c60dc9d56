package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/internal/listing"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
)

// ListQuery bounds list query parameters.
type ListQuery struct {
	DefaultPageSize int
	MaxPageSize     int
}

// listParams reads search, dimension filters, sort and paging from the query
// string. Only dimensions declared by cfg are read as filters.
func listParams[T any](c *gin.Context, cfg listing.Config[T], q ListQuery) (listing.Params, error) {
	details := map[string]string{}
	params := listing.Params{
		Query:   strings.TrimSpace(c.Query("search")),
		Filters: map[string]string{},
		Page:    1,
	}

	for name := range cfg.Dimensions {
		if value := strings.TrimSpace(c.Query(name)); value != "" && value != listing.All {
			params.Filters[name] = value
		}
	}

	if key := strings.TrimSpace(c.Query("sort_by")); key != "" {
		dir := listing.Asc
		if raw := c.Query("sort_order"); raw != "" {
			parsed, ok := listing.ParseDirection(raw)
			if !ok {
				details["sort_order"] = "must be asc or desc"
			}
			dir = parsed
		}
		params.Sort = listing.Sort{Key: key, Direction: dir}
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			details["page"] = "must be an integer"
		}
		params.Page = max(page, 1)
	}

	params.PageSize = q.DefaultPageSize
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		switch {
		case err != nil || size < 1:
			details["page_size"] = "must be a positive integer"
		case q.MaxPageSize > 0 && size > q.MaxPageSize:
			details["page_size"] = fmt.Sprintf("must not exceed %d", q.MaxPageSize)
		}
		params.PageSize = size
	}

	if len(details) > 0 {
		return listing.Params{}, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "invalid list query"), details)
	}
	return params, nil
}
