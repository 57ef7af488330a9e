package storage

import (
	"strings"
	"time"
)

// SlotInfo summarizes one occupied scenario slot.
type SlotInfo struct {
	Slot       int       `json:"slot"`
	Name       string    `json:"name"`
	BuiltIn    bool      `json:"builtIn,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	ModifiedAt time.Time `json:"modifiedAt,omitempty"`
}

// ValidationError carries the blocking findings that prevented a save.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "scenario validation failed: " + strings.Join(e.Errors, "; ")
}
