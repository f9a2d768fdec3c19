package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/teia-community/teia-analytics/internal/domain"
)

const (
	MAX_PAGE_SIZE     = 100
	DEFAULT_PAGE_SIZE = 20
)

// RunQueryParams selects the run a request reads from
type RunQueryParams struct {
	// RunID is an explicit run id, the latest run is used when empty
	RunID string `form:"run_id"`
}

// ListUsersQueryParams holds query parameters for GET /users
type ListUsersQueryParams struct {
	RunQueryParams

	// Filters
	Type       string `form:"type"`
	Restricted *bool  `form:"restricted"`

	// Pagination
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAllocationsQueryParams holds query parameters for GET /allocations
type ListAllocationsQueryParams struct {
	RunQueryParams

	// Pagination
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ParseListUsersQuery parses query parameters for GET /users
func ParseListUsersQuery(c *gin.Context) (*ListUsersQueryParams, error) {
	var params ListUsersQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Type != "" && !domain.IsValidUserType(domain.UserType(params.Type)) {
		return nil, fmt.Errorf("invalid user type: %s", params.Type)
	}

	params.Limit, params.Offset = normalizePage(params.Limit, params.Offset)

	return &params, nil
}

// ParseListAllocationsQuery parses query parameters for GET /allocations
func ParseListAllocationsQuery(c *gin.Context) (*ListAllocationsQueryParams, error) {
	var params ListAllocationsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	params.Limit, params.Offset = normalizePage(params.Limit, params.Offset)

	return &params, nil
}

func normalizePage(limit, offset int) (int, int) {
	// Cap limit
	if limit <= 0 {
		limit = DEFAULT_PAGE_SIZE
	}
	if limit > MAX_PAGE_SIZE {
		limit = MAX_PAGE_SIZE
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
