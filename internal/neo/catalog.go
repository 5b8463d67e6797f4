package neo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrNoRecords is returned when a payload contains no recognizable record list.
var ErrNoRecords = errors.New("no asteroid list in payload")

// ParseCatalog decodes a catalog payload into raw records.
//
// Accepted shapes:
//   - a bare JSON array of records
//   - {"asteroids": [...]}                       (application API)
//   - {"near_earth_objects": [...]}              (NeoWs browse)
//   - {"near_earth_objects": {"2025-01-01": [...]}} (NeoWs feed, dates in order)
//
// Elements that are not JSON objects become empty records so that list
// positions are preserved.
func ParseCatalog(data []byte) ([]Record, error) {
	var root any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode catalog JSON: %w", err)
	}

	switch v := root.(type) {
	case []any:
		return toRecords(v), nil
	case map[string]any:
		if list, ok := v["asteroids"].([]any); ok {
			return toRecords(list), nil
		}
		switch neos := v["near_earth_objects"].(type) {
		case []any:
			return toRecords(neos), nil
		case map[string]any:
			dates := make([]string, 0, len(neos))
			for d := range neos {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			var out []Record
			for _, d := range dates {
				if list, ok := neos[d].([]any); ok {
					out = append(out, toRecords(list)...)
				}
			}
			return out, nil
		}
	}
	return nil, ErrNoRecords
}

// LoadFile reads and parses a catalog from disk.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	records, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return records, nil
}

func toRecords(list []any) []Record {
	out := make([]Record, len(list))
	for i, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out[i] = Record(obj)
		} else {
			out[i] = Record{}
		}
	}
	return out
}
