package dto

import (
	"github.com/teia-community/teia-analytics/internal/store/schema"
)

// AllocationResponse represents the allocation of one recipient
type AllocationResponse struct {
	Address        string             `json:"address"`
	Username       string             `json:"username"`
	Type           string             `json:"type"`
	ScalingFactor  float64            `json:"scaling_factor"`
	Amounts        map[string]float64 `json:"amounts"`
	ActivityAmount float64            `json:"activity_amount"`
	TotalAmount    float64            `json:"total_amount"`
}

// AllocationListResponse represents a paginated list of allocations
type AllocationListResponse struct {
	RunID       string                `json:"run_id"`
	Allocations []*AllocationResponse `json:"items"`
	Total       uint64                `json:"total"`
	Offset      *uint64               `json:"offset,omitempty"`
}

// MapAllocationToDTO maps a schema.Allocation to AllocationResponse
func MapAllocationToDTO(allocation *schema.Allocation) *AllocationResponse {
	return &AllocationResponse{
		Address:        allocation.Address,
		Username:       allocation.Username,
		Type:           allocation.Type,
		ScalingFactor:  allocation.ScalingFactor,
		Amounts:        allocation.Amounts.Data(),
		ActivityAmount: allocation.ActivityAmount,
		TotalAmount:    allocation.TotalAmount,
	}
}
