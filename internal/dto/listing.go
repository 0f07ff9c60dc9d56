package dto

// ListQuery carries the list controls parsed from query parameters.
type ListQuery struct {
	Search    string
	Filters   map[string]string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ViewEventRequest applies control events to a session's table view. Fields
// are applied in order: search, filters, page size, sort, navigation.
type ViewEventRequest struct {
	Search   *string           `json:"search"`
	Filters  map[string]string `json:"filters"`
	PageSize *int              `json:"pageSize" validate:"omitempty,gt=0"`
	SortBy   string            `json:"sortBy"`
	Page     *int              `json:"page"`
	Action   string            `json:"action" validate:"omitempty,oneof=next prev first last reset"`
}
