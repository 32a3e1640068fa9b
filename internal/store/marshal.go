package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// marshalStrings converts a media list or tag set to JSON TEXT for
// storage. nil marshals as the empty list so columns never hold SQL NULL.
func marshalStrings(list []string) (string, error) {
	if list == nil {
		return "[]", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings parses JSON TEXT back into a string slice.
// Empty input yields nil, keeping round-tripped records comparable to the
// structs callers built by hand.
func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("unmarshal string list: %w", err)
	}
	return list, nil
}

// Timestamps persist as unix milliseconds, matching the precision the
// records were originally captured with.

func timeToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// nullFloat converts an optional coordinate for binding.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// floatPtr converts a scanned nullable coordinate back.
func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
