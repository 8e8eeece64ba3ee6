package models

import "time"

// Temperature classes. Fixed at provisioning time; a zone never changes class.
const (
	ClassUltraCold    = "ULTRA_COLD"   // -80C freezers
	ClassDeepFreeze   = "DEEP_FREEZE"  // -20C freezers
	ClassRefrigerated = "REFRIGERATED" // 2-8C
	ClassAmbient      = "AMBIENT"
	ClassIncubation   = "INCUBATION"
)

type StorageZone struct {
	ID               string    `json:"id"` // facility label, e.g. 'Z1', 'FRZ-B2'
	TemperatureClass string    `json:"temperature_class"`
	Capacity         int       `json:"capacity"`
	OccupiedCount    int       `json:"occupied_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ZoneSummary is the read-only capacity snapshot served to dashboards.
type ZoneSummary struct {
	ZoneID           string `json:"zone_id"`
	TemperatureClass string `json:"temperature_class"`
	Capacity         int    `json:"capacity"`
	OccupiedCount    int    `json:"occupied_count"`
}

// CreateZoneRequest represents the request body for provisioning a zone
type CreateZoneRequest struct {
	ID               string `json:"id"`
	TemperatureClass string `json:"temperature_class"`
	Capacity         int    `json:"capacity"`
}

// AmendCapacityRequest represents the request body for an administrative capacity change
type AmendCapacityRequest struct {
	Capacity int `json:"capacity"`
}

// ValidTemperatureClass reports whether c is one of the provisioned classes.
func ValidTemperatureClass(c string) bool {
	switch c {
	case ClassUltraCold, ClassDeepFreeze, ClassRefrigerated, ClassAmbient, ClassIncubation:
		return true
	}
	return false
}

// CompatibleStorage reports whether a zone of class zoneClass can hold a
// sample whose declared requirement is required. Compatibility is exact:
// a DEEP_FREEZE sample does not go into an ULTRA_COLD zone, regulated
// storage conditions are not interchangeable.
func CompatibleStorage(required, zoneClass string) bool {
	return required == zoneClass
}
