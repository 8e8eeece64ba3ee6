package models

import "time"

// Sample lifecycle states
const (
	StatePending      = "PENDING"
	StateValidated    = "VALIDATED"
	StateInStorage    = "IN_STORAGE"
	StateInSequencing = "IN_SEQUENCING"
	StateCompleted    = "COMPLETED"
)

type Sample struct {
	ID            string     `json:"id"`
	Barcode       string     `json:"barcode"`
	TypeCode      string     `json:"type_code"`      // e.g. 'DNA', 'RNA', 'BLD'
	StorageClass  string     `json:"storage_class"`  // declared temperature requirement, set at submission
	State         string     `json:"state"`
	CurrentZoneID *string    `json:"current_zone_id,omitempty"` // set only while the sample occupies a zone
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateSampleRequest represents the request body for registering a sample
type CreateSampleRequest struct {
	TypeCode     string `json:"type_code"`
	StorageClass string `json:"storage_class"`
}

// AdvanceStateRequest represents the request body for a lifecycle advance
type AdvanceStateRequest struct {
	TargetState string `json:"target_state"`
}

// AssignZoneRequest represents the request body for assigning or moving a sample
type AssignZoneRequest struct {
	ZoneID string `json:"zone_id"`
}

// ScanResult is the single-read resolution of a barcode for scanning workflows
type ScanResult struct {
	Sample *Sample      `json:"sample"`
	Zone   *StorageZone `json:"zone,omitempty"`
	State  string       `json:"state"`
}

// legalTransitions encodes the lifecycle state machine as data. Adding a
// state means adding one row here, nothing else.
var legalTransitions = map[string]map[string]bool{
	StatePending:      {StateValidated: true},
	StateValidated:    {StateInStorage: true},
	StateInStorage:    {StateInStorage: true, StateInSequencing: true},
	StateInSequencing: {StateCompleted: true},
	StateCompleted:    {},
}

// CanTransition reports whether from -> to is a legal lifecycle transition.
func CanTransition(from, to string) bool {
	return legalTransitions[from][to]
}

// KnownState reports whether s is one of the defined lifecycle states.
func KnownState(s string) bool {
	switch s {
	case StatePending, StateValidated, StateInStorage, StateInSequencing, StateCompleted:
		return true
	}
	return false
}
