package model

import "strconv"

// Color represents a brick color in the catalog, optionally keyed by the
// manufacturer's official color ID.
type Color struct {
	ID            int64  `json:"id"`
	LegoID        *int64 `json:"lego_id,omitempty"`
	Name          string `json:"name"`
	Hex           string `json:"hex"` // "#RRGGBB", may be empty
	IsTransparent bool   `json:"is_transparent"`
	IsMetallic    bool   `json:"is_metallic"`
}

// RecordID returns the server-assigned unique id.
func (c Color) RecordID() int64 { return c.ID }

// SearchText flattens the record to text for client-side substring filtering.
func (c Color) SearchText() string {
	parts := []string{strconv.FormatInt(c.ID, 10), c.Name, c.Hex}
	if c.LegoID != nil {
		parts = append(parts, strconv.FormatInt(*c.LegoID, 10))
	}
	if c.IsTransparent {
		parts = append(parts, "transparent")
	}
	if c.IsMetallic {
		parts = append(parts, "metallic")
	}
	return joinSearchText(parts)
}
