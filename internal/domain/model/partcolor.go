package model

import "strconv"

// PartColor is the instruction line-item identity: a shape in a specific
// color, plus an optional variant such as a decal or print.
type PartColor struct {
	ID int64 `json:"id"`
	// Part is the nested shape, populated on reads.
	Part *Part `json:"part,omitempty"`
	// PartID connects the shape on writes (the nested Part is read-only).
	PartID     *int64 `json:"part_id,omitempty"`
	ColorID    *int64 `json:"color,omitempty"`
	ColorHex   string `json:"color_hex,omitempty"`
	Variant    string `json:"variant,omitempty"`
	PartNumber string `json:"part_number,omitempty"`

	ImageURL1 *string `json:"image_url_1,omitempty"`
	ImageURL2 *string `json:"image_url_2,omitempty"`
	// ThumbURL is derived server-side from the image fields; read-only.
	ThumbURL *string `json:"thumb_url,omitempty"`
}

// RecordID returns the server-assigned unique id.
func (pc PartColor) RecordID() int64 { return pc.ID }

// SearchText flattens the record to text for client-side substring filtering.
// The nested part's text is included so searching a shape number also matches
// its colored variants.
func (pc PartColor) SearchText() string {
	parts := []string{
		strconv.FormatInt(pc.ID, 10),
		pc.ColorHex,
		pc.Variant,
		pc.PartNumber,
	}
	if pc.Part != nil {
		parts = append(parts, pc.Part.SearchText())
	}
	return joinSearchText(parts)
}
