package timeutil

import "time"

// All timestamps in the system are UTC. Custody records cross audits and
// jurisdictions, so local facility time never enters the database.

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// ToUTC converts any time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// Format formats a time in UTC using the given layout.
func Format(t time.Time, layout string) string {
	return t.UTC().Format(layout)
}

// Common layouts
const (
	BarcodeLayout  = "20060102150405"
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 15:04 UTC"
)
