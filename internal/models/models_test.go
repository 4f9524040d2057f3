package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRowChanged(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"renamed", Row{Original: "a.txt", Proposed: "b.txt", Valid: true}, true},
		{"same name", Row{Original: "a.txt", Proposed: "a.txt", Valid: true}, false},
		{"invalid", Row{Original: "a.txt", Proposed: "<invalid pattern>", Valid: false}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Changed(); got != tt.want {
				t.Errorf("Changed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOriginals(t *testing.T) {
	rows := []Row{{Original: "b"}, {Original: "a"}}
	got := Originals(rows)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("Originals() = %v, want [b a]", got)
	}
}

func TestBatchInvalidCount(t *testing.T) {
	b := &Batch{Rows: []Row{{Valid: true}, {Valid: false}, {Valid: false}}}
	if got := b.InvalidCount(); got != 2 {
		t.Errorf("InvalidCount() = %d, want 2", got)
	}
}

func TestPlanRenames(t *testing.T) {
	p := &Plan{
		Items: []PlanItem{
			{Row: Row{Original: "a"}, Status: StatusOK, Target: "x"},
			{Row: Row{Original: "b"}, Status: StatusUnchanged, Target: "b"},
			{Row: Row{Original: "c"}, Status: StatusOK, Target: "y"},
		},
		Summary: PlanSummary{Total: 3, OK: 2, Unchanged: 1},
	}
	got := p.Renames()
	if len(got) != 2 || got[0].Target != "x" || got[1].Target != "y" {
		t.Errorf("Renames() = %+v", got)
	}
}

func TestPlanItemFlattensRow(t *testing.T) {
	it := PlanItem{Row: Row{Original: "a.txt", Proposed: "b.txt", Valid: true}, Target: "b.txt", Status: StatusOK}

	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if flat["original"] != "a.txt" || flat["target"] != "b.txt" {
		t.Errorf("expected flattened JSON, got %s", data)
	}

	out, err := yaml.Marshal(it)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var back PlanItem
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if back != it {
		t.Errorf("YAML round trip = %+v, want %+v", back, it)
	}
}
