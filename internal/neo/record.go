// Package neo provides types and functions for working with near-Earth asteroid catalog records.
package neo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is a raw, loosely-structured asteroid record as decoded from JSON.
// Any subset of fields may be absent and any field may carry the wrong type.
type Record map[string]any

// Field paths used by the normalizer. Elements are either object keys (string)
// or array indexes (int).
var (
	pathAverageDiameter = []any{"calculatedProperties", "averageDiameter"}
	pathMaxDiameterM    = []any{"estimated_diameter", "meters", "estimated_diameter_max"}
	pathMaxDiameterKm   = []any{"estimated_diameter", "kilometers", "estimated_diameter_max"}
	pathRelVelocity     = []any{"close_approach_data", 0, "relative_velocity", "kilometers_per_second"}
	pathAverageVelocity = []any{"calculatedProperties", "averageVelocity"}
	pathMissDistance    = []any{"close_approach_data", 0, "miss_distance", "kilometers"}
	pathEpoch           = []any{"close_approach_data", 0, "epoch_date_close_approach"}
	pathHazardous       = []any{"is_potentially_hazardous_asteroid"}
	pathReferenceID     = []any{"neo_reference_id"}
	pathInternalID      = []any{"_id"}
	pathName            = []any{"name"}
)

// Lookup walks a path of object keys and array indexes. It returns false as
// soon as a step is missing or has the wrong shape.
func (r Record) Lookup(path ...any) (any, bool) {
	var cur any = map[string]any(r)
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				if rec, isRec := cur.(Record); isRec {
					obj, ok = map[string]any(rec), true
				}
			}
			if !ok {
				return nil, false
			}
			v, exists := obj[key]
			if !exists || v == nil {
				return nil, false
			}
			cur = v
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) || arr[key] == nil {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Number returns the value at path as a finite, non-zero number.
// Numeric strings are parsed. Zero, NaN, infinities, booleans and any
// non-numeric value count as absent.
func (r Record) Number(path ...any) (float64, bool) {
	v, ok := r.Lookup(path...)
	if !ok {
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok || f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String returns the value at path as a non-empty string. Numbers are
// formatted without exponent, and a {"$oid": "..."} wrapper is unwrapped.
func (r Record) String(path ...any) (string, bool) {
	v, ok := r.Lookup(path...)
	if !ok {
		return "", false
	}
	s, ok := toString(v)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Bool returns the value at path coerced to a boolean.
func (r Record) Bool(path ...any) bool {
	v, ok := r.Lookup(path...)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		f, ok := toFloat(v)
		return ok && f != 0 && !math.IsNaN(f)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return "", false
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case map[string]any:
		if oid, ok := s["$oid"].(string); ok {
			return oid, true
		}
		return "", false
	default:
		return "", false
	}
}
