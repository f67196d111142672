package model

// AllocationStatus is the terminal outcome of one planning pass for a trip.
type AllocationStatus string

const (
	StatusAllocated   AllocationStatus = "ALLOCATED"
	StatusUnallocated AllocationStatus = "UNALLOCATED"
)

// Allocation is the planning output for a single trip. Members of one group
// share van and order but keep individual records.
type Allocation struct {
	TripID int              `json:"trip_id"`
	Van    int              `json:"van,omitempty"`   // 1-based; 0 when unallocated
	Order  int              `json:"order,omitempty"` // 1-based position on the van timeline
	Status AllocationStatus `json:"status"`
}
