package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/brickstash/catadm/internal/domain/model"
)

// listEnvelope is the paginated list shape some deployments return instead of
// a bare JSON array.
type listEnvelope struct {
	Results json.RawMessage `json:"results"`
}

// DecodeList decodes a list response body for the kind into records.
// Both a bare JSON array and a {"results": [...]} envelope are accepted.
func (k Kind) DecodeList(body []byte) ([]Record, error) {
	items := bytes.TrimLeft(body, " \t\r\n")
	if len(items) > 0 && items[0] == '{' {
		var env listEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode %s list envelope: %w", k, err)
		}
		if env.Results == nil {
			return nil, fmt.Errorf("decode %s list: object response has no results field", k)
		}
		items = env.Results
	}

	switch k {
	case KindParts:
		return decodeRecords[model.Part](k, items)
	case KindColors:
		return decodeRecords[model.Color](k, items)
	case KindPartColors:
		return decodeRecords[model.PartColor](k, items)
	case KindSets:
		return decodeRecords[model.Set](k, items)
	case KindThemes:
		return decodeRecords[model.Theme](k, items)
	default:
		return nil, fmt.Errorf("unknown resource kind %q", string(k))
	}
}

// DecodeRecord decodes a single-record response body for the kind.
func (k Kind) DecodeRecord(body []byte) (Record, error) {
	switch k {
	case KindParts:
		return decodeRecord[model.Part](k, body)
	case KindColors:
		return decodeRecord[model.Color](k, body)
	case KindPartColors:
		return decodeRecord[model.PartColor](k, body)
	case KindSets:
		return decodeRecord[model.Set](k, body)
	case KindThemes:
		return decodeRecord[model.Theme](k, body)
	default:
		return nil, fmt.Errorf("unknown resource kind %q", string(k))
	}
}

func decodeRecords[T Record](k Kind, items []byte) ([]Record, error) {
	var typed []T
	if err := json.Unmarshal(items, &typed); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", k, err)
	}
	records := make([]Record, len(typed))
	for i := range typed {
		records[i] = typed[i]
	}
	return records, nil
}

func decodeRecord[T Record](k Kind, body []byte) (Record, error) {
	var typed T
	if err := json.Unmarshal(body, &typed); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", k, err)
	}
	return typed, nil
}
