package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/api/rest/dto"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/store"
	"github.com/teia-community/teia-analytics/internal/store/schema"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetLatestRun retrieves the most recent analysis run
	// GET /api/v1/runs/latest?program=<program>
	GetLatestRun(c *gin.Context)

	// GetUser retrieves the user record of an address
	// GET /api/v1/users/:address?run_id=<run_id>
	GetUser(c *gin.Context)

	// ListUsers retrieves user records with optional type and restricted filters
	// GET /api/v1/users?type=<type>&restricted=<bool>&limit=<limit>&offset=<offset>&run_id=<run_id>
	ListUsers(c *gin.Context)

	// ListAllocations retrieves the allocations of a distribution run, largest first
	// GET /api/v1/allocations?limit=<limit>&offset=<offset>&run_id=<run_id>
	ListAllocations(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store store.Store
}

// NewHandler creates a new REST API handler reading from the store
func NewHandler(store store.Store) Handler {
	return &handler{
		store: store,
	}
}

// GetLatestRun retrieves the most recent analysis run
func (h *handler) GetLatestRun(c *gin.Context) {
	program := schema.RunProgram(c.Query("program"))
	switch program {
	case "", schema.RunProgramUsers, schema.RunProgramDistribution:
	default:
		respondValidationError(c, "invalid program: "+string(program))
		return
	}

	run, err := h.store.GetLatestRun(c.Request.Context(), program)
	if err != nil {
		respondStoreError(c, err, "Failed to get latest run")
		return
	}

	c.JSON(http.StatusOK, dto.MapRunToDTO(run))
}

// GetUser retrieves the user record of an address
func (h *handler) GetUser(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsUserAddress(address) && !domain.IsContractAddress(address) {
		respondBadRequest(c, "Invalid address")
		return
	}

	runID, ok := h.resolveRun(c, c.Query("run_id"), "")
	if !ok {
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), runID, address)
	if err != nil {
		respondStoreError(c, err, "Failed to get user",
			zap.String("address", address),
			zap.String("runID", runID.String()))
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToDTO(user))
}

// ListUsers retrieves user records with optional type and restricted filters
func (h *handler) ListUsers(c *gin.Context) {
	params, err := ParseListUsersQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	runID, ok := h.resolveRun(c, params.RunID, "")
	if !ok {
		return
	}

	users, total, err := h.store.ListUsersByType(c.Request.Context(), runID, store.UserFilter{
		Type:       params.Type,
		Restricted: params.Restricted,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		respondStoreError(c, err, "Failed to list users", zap.String("runID", runID.String()))
		return
	}

	items := make([]*dto.UserResponse, len(users))
	for i := range users {
		items[i] = dto.MapUserToDTO(&users[i])
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		RunID:  runID.String(),
		Users:  items,
		Total:  total,
		Offset: nextOffset(params.Offset, len(users), total),
	})
}

// ListAllocations retrieves the allocations of a distribution run
func (h *handler) ListAllocations(c *gin.Context) {
	params, err := ParseListAllocationsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	runID, ok := h.resolveRun(c, params.RunID, schema.RunProgramDistribution)
	if !ok {
		return
	}

	allocations, total, err := h.store.ListAllocations(c.Request.Context(), runID, params.Limit, params.Offset)
	if err != nil {
		respondStoreError(c, err, "Failed to list allocations", zap.String("runID", runID.String()))
		return
	}

	items := make([]*dto.AllocationResponse, len(allocations))
	for i := range allocations {
		items[i] = dto.MapAllocationToDTO(&allocations[i])
	}

	c.JSON(http.StatusOK, dto.AllocationListResponse{
		RunID:       runID.String(),
		Allocations: items,
		Total:       total,
		Offset:      nextOffset(params.Offset, len(allocations), total),
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "teia-analytics-api",
	})
}

// resolveRun returns the requested run id, or the latest run of the program when none is given.
// It writes the error response and returns false when the run cannot be resolved.
func (h *handler) resolveRun(c *gin.Context, requested string, program schema.RunProgram) (uuid.UUID, bool) {
	if requested != "" {
		runID, err := uuid.Parse(requested)
		if err != nil {
			respondValidationError(c, "invalid run_id: "+requested)
			return uuid.Nil, false
		}
		return runID, true
	}

	run, err := h.store.GetLatestRun(c.Request.Context(), program)
	if err != nil {
		respondStoreError(c, err, "Failed to get latest run")
		return uuid.Nil, false
	}

	return run.ID, true
}

func nextOffset(offset, count int, total uint64) *uint64 {
	next := uint64(offset + count) //nolint:gosec,G115
	if next >= total {
		return nil
	}
	return &next
}
