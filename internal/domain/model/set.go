package model

import "strconv"

// Set represents a buildable set: a numbered product composed of part-color
// line items under a theme.
type Set struct {
	ID         int64  `json:"id"`
	Number     string `json:"number"` // set number like "75218", unique
	SetName    string `json:"set_name"`
	ImageURL   string `json:"image_url,omitempty"`
	Age        string `json:"age,omitempty"`
	PieceCount int64  `json:"piece_count"`

	// Theme is the nested theme, populated on reads.
	Theme *Theme `json:"theme,omitempty"`
	// ThemeID connects the theme on writes (the nested Theme is read-only).
	ThemeID *int64 `json:"theme_id,omitempty"`

	// PartsDetail lists the set's part-color line items with quantities; read-only.
	PartsDetail []SetPart `json:"parts_detail,omitempty"`
}

// SetPart is one instruction line: this set needs Quantity of a specific PartColor.
type SetPart struct {
	ID int64 `json:"id"`
	// PartColor is the nested line item, populated on reads.
	PartColor *PartColor `json:"part_color,omitempty"`
	// PartColorID connects the line item on writes.
	PartColorID *int64 `json:"part_color_id,omitempty"`
	Quantity    int64  `json:"quantity"`
}

// RecordID returns the server-assigned unique id.
func (s Set) RecordID() int64 { return s.ID }

// SearchText flattens the record to text for client-side substring filtering.
func (s Set) SearchText() string {
	parts := []string{
		strconv.FormatInt(s.ID, 10),
		s.Number,
		s.SetName,
		s.Age,
	}
	if s.Theme != nil {
		parts = append(parts, s.Theme.Name)
	}
	return joinSearchText(parts)
}
