package model

import (
	"strconv"
	"strings"
)

// Part represents a brick shape, keyed by the manufacturer part number
// (e.g. "3001") in addition to the server-assigned id.
type Part struct {
	ID               int64   `json:"id"`
	PartID           string  `json:"part_id"` // shape id, unique
	Name             string  `json:"name"`
	GeneralCategory  string  `json:"general_category,omitempty"`
	SpecificCategory string  `json:"specific_category,omitempty"`
	ImageURL1        *string `json:"image_url_1,omitempty"`
	// ThumbURL is derived server-side from the part's colored variants; read-only.
	ThumbURL *string `json:"thumb_url,omitempty"`
}

// RecordID returns the server-assigned unique id.
func (p Part) RecordID() int64 { return p.ID }

// SearchText flattens the record to text for client-side substring filtering.
func (p Part) SearchText() string {
	return joinSearchText([]string{
		strconv.FormatInt(p.ID, 10),
		p.PartID,
		p.Name,
		p.GeneralCategory,
		p.SpecificCategory,
	})
}

// joinSearchText joins non-empty fields with single spaces.
func joinSearchText(fields []string) string {
	kept := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
