package model

import "strconv"

// Theme represents a set theme (e.g. a product line).
type Theme struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// RecordID returns the server-assigned unique id.
func (t Theme) RecordID() int64 { return t.ID }

// SearchText flattens the record to text for client-side substring filtering.
func (t Theme) SearchText() string {
	return joinSearchText([]string{strconv.FormatInt(t.ID, 10), t.Name})
}
