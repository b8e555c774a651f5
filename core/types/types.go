// Package types defines the core data model for the add-on catalog.
package types

import (
	"encoding/json"
	"time"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component.
// It marshals to an ISO-8601 date string.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// String returns the ISO-8601 form
func (d Date) String() string {
	return d.Format(dateLayout)
}

// FileEntry is one file listed inside an addon element.
// The fields are passthrough only; aggregation never reads them.
type FileEntry struct {
	// Kind is the element tag the file was listed under
	Kind string `json:"kind"`

	// Path is the file location, if given
	Path string `json:"path,omitempty"`

	// Size is the declared size in bytes; nil when absent or unparseable
	Size *int64 `json:"size,omitempty"`
}

// Addon is a single product entry from the catalog. Records are built once
// by the parser and never mutated afterwards.
type Addon struct {
	// ID uniquely identifies the catalog entry
	ID string `json:"id"`

	// Description is the display name; may be empty
	Description string `json:"description"`

	// Version is compared lexicographically when breaking ties
	Version string `json:"version"`

	// AvailableDate is when the addon was released; nil when unknown
	AvailableDate *Date `json:"available_date"`

	// ExpirationDate is unused by aggregation
	ExpirationDate *Date `json:"expiration_date"`

	// Platforms lists supported platform identifiers; may be empty
	Platforms []string `json:"platforms"`

	// OSVersions lists supported OS versions (passthrough)
	OSVersions []string `json:"os_versions"`

	// OSTypes lists supported OS type labels; may be empty
	OSTypes []string `json:"os_types"`

	// Architecture is a single optional label; empty when absent
	Architecture string `json:"architecture,omitempty"`

	// InstallCommand is passthrough only
	InstallCommand string `json:"install_command,omitempty"`

	// Files lists kind/path/size descriptors (passthrough)
	Files []FileEntry `json:"files,omitempty"`
}

// GroupKey returns the string used to cluster records when selecting the
// latest version: the description, or the ID when the description is empty.
// Every code path that groups records must use this method.
func (a Addon) GroupKey() string {
	if a.Description != "" {
		return a.Description
	}
	return a.ID
}
