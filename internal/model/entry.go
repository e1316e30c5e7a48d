package model

import "time"

// TimeEntry represents a single recorded work interval recovered from the log.
type TimeEntry struct {
	Row             int       `json:"row"`
	Owner           string    `json:"owner"`
	Description     string    `json:"description"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationSeconds int64     `json:"duration_seconds"`
	Day             time.Time `json:"day"`
	Overlap         bool      `json:"overlap"`
}

// OwnerTotal is the number of hours one owner logged in some period.
type OwnerTotal struct {
	Owner string  `json:"owner"`
	Hours float64 `json:"hours"`
}

// Scope selects whose entries are considered. An empty Owner means all owners.
type Scope struct {
	Owner string
}

// AllOwners is the scope covering every owner in the log.
var AllOwners = Scope{}

// Includes reports whether e belongs to the scope.
func (s Scope) Includes(e TimeEntry) bool {
	return s.Owner == "" || e.Owner == s.Owner
}
