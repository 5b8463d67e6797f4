package neo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseCatalog_Envelopes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantIDs []string
	}{
		{
			name:    "bare array",
			payload: `[{"neo_reference_id": "a"}, {"neo_reference_id": "b"}]`,
			wantIDs: []string{"a", "b"},
		},
		{
			name:    "application envelope",
			payload: `{"asteroids": [{"neo_reference_id": "a"}], "total": 1}`,
			wantIDs: []string{"a"},
		},
		{
			name:    "browse envelope",
			payload: `{"near_earth_objects": [{"neo_reference_id": "n1"}, {"neo_reference_id": "n2"}]}`,
			wantIDs: []string{"n1", "n2"},
		},
		{
			name: "feed envelope sorted by date",
			payload: `{"element_count": 3, "near_earth_objects": {
				"2025-01-02": [{"neo_reference_id": "late"}],
				"2025-01-01": [{"neo_reference_id": "early1"}, {"neo_reference_id": "early2"}]
			}}`,
			wantIDs: []string{"early1", "early2", "late"},
		},
		{
			name:    "non-object elements keep positions",
			payload: `[1, "x", {"neo_reference_id": "c"}]`,
			wantIDs: []string{"0", "1", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseCatalog([]byte(tt.payload))
			if err != nil {
				t.Fatalf("ParseCatalog: %v", err)
			}
			if len(records) != len(tt.wantIDs) {
				t.Fatalf("got %d records, want %d", len(records), len(tt.wantIDs))
			}
			for i, r := range records {
				if got := Normalize(r, i).Identifier; got != tt.wantIDs[i] {
					t.Errorf("record %d id = %q, want %q", i, got, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	if _, err := ParseCatalog([]byte(`{not json`)); err == nil {
		t.Error("expected decode error")
	}
	_, err := ParseCatalog([]byte(`{"error": "rate limited"}`))
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
	_, err = ParseCatalog([]byte(`42`))
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(path, []byte(`{"asteroids": [{"name": "Apophis"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRecordLookup(t *testing.T) {
	r := mustParse(t, `[{"a": {"b": [null, {"c": 5}]}}]`)[0]

	if v, ok := r.Number("a", "b", 1, "c"); !ok || v != 5 {
		t.Errorf("Number(a.b[1].c) = %v, %v", v, ok)
	}
	if _, ok := r.Lookup("a", "b", 0); ok {
		t.Error("null element should be absent")
	}
	if _, ok := r.Lookup("a", "b", 7, "c"); ok {
		t.Error("out-of-range index should be absent")
	}
	if _, ok := r.Lookup("a", "missing"); ok {
		t.Error("missing key should be absent")
	}
	if _, ok := r.Lookup("a", 0); ok {
		t.Error("index into object should be absent")
	}
}
