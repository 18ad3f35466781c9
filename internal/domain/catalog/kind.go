// Package catalog defines the closed set of catalog resource kinds and the
// mapping from each kind to its REST paths and record type.
package catalog

import (
	"fmt"
	"strings"
)

// Record is the behavior every catalog record type implements. The controller
// never interprets fields beyond the id; filtering goes through SearchText.
type Record interface {
	// RecordID returns the server-assigned unique id.
	RecordID() int64
	// SearchText returns the record flattened to text for substring filtering.
	SearchText() string
}

// Kind identifies one of the catalog's resource kinds. The set is closed:
// each kind maps to a distinct collection endpoint and record shape.
type Kind string

const (
	KindParts      Kind = "parts"
	KindColors     Kind = "colors"
	KindPartColors Kind = "part-colors"
	KindSets       Kind = "sets"
	KindThemes     Kind = "themes"
)

// AllKinds returns every catalog kind in a stable order.
func AllKinds() []Kind {
	return []Kind{KindParts, KindColors, KindPartColors, KindSets, KindThemes}
}

// Valid reports whether the kind is one of the supported resource kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindParts, KindColors, KindPartColors, KindSets, KindThemes:
		return true
	default:
		return false
	}
}

// ParseKind normalizes a kind string and reports an error when unsupported.
// "partcolors" and "part_colors" are accepted as spellings of "part-colors".
func ParseKind(value string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "partcolors", "part_colors":
		normalized = string(KindPartColors)
	}
	k := Kind(normalized)
	if !k.Valid() {
		return "", fmt.Errorf("unknown resource kind %q (expected one of %s)", value, kindList())
	}
	return k, nil
}

func kindList() string {
	kinds := AllKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// CollectionPath returns the list/create endpoint path for the kind,
// relative to the API base URL.
func (k Kind) CollectionPath() string {
	return "/admin/" + string(k) + "/"
}

// ItemPath returns the retrieve/update/delete endpoint path for one record.
func (k Kind) ItemPath(id int64) string {
	return fmt.Sprintf("%s%d/", k.CollectionPath(), id)
}
