package timezones

import (
	"strings"
	"testing"
	"time"
)

func TestEmbeddedCatalog(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	zones, err := All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(zones) == 0 || zones[0].ID != "UTC" {
		t.Fatalf("All() should start with UTC, got %d zones", len(zones))
	}

	groups, err := Groups()
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	total := 0
	for i, g := range groups {
		if i > 0 && groups[i-1].Region >= g.Region {
			t.Errorf("regions out of order: %q then %q", groups[i-1].Region, g.Region)
		}
		for j := 1; j < len(g.Zones); j++ {
			if g.Zones[j-1].Label > g.Zones[j].Label {
				t.Errorf("%s: %q sorted after %q", g.Region, g.Zones[j-1].Label, g.Zones[j].Label)
			}
		}
		total += len(g.Zones)
	}
	if total != len(zones) {
		t.Errorf("groups hold %d zones, All has %d", total, len(zones))
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		id        string
		valid     bool
		label     string
		locOffset bool // zone has a non-UTC offset in January
	}{
		{"America/New_York", true, "Eastern Time (US & Canada)", true},
		{"Asia/Tokyo", true, "", true},
		{"UTC", true, "UTC", false},
		{"Mars/Olympus_Mons", false, "Mars/Olympus_Mons", false},
		{"", false, "", false},
	}
	jan := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			if got := Valid(tc.id); got != tc.valid {
				t.Errorf("Valid = %v, want %v", got, tc.valid)
			}
			if tc.label != "" {
				if got := Label(tc.id); got != tc.label {
					t.Errorf("Label = %q, want %q", got, tc.label)
				}
			}
			_, off := jan.In(Location(tc.id)).Zone()
			if (off != 0) != tc.locOffset {
				t.Errorf("Location offset = %d, want non-zero %v", off, tc.locOffset)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"not json":     `{`,
		"missing id":   `[{"label":"Nowhere"}]`,
		"unknown zone": `[{"id":"Nowhere/City","label":"Nowhere"}]`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parse([]byte(data))
			if err == nil || !strings.Contains(err.Error(), dataFile) {
				t.Errorf("parse error = %v, want mention of %s", err, dataFile)
			}
		})
	}
}

func TestParse_DefaultRegion(t *testing.T) {
	c, err := parse([]byte(`[{"id":"Europe/Paris","label":"Paris","region":"Europe"},{"id":"UTC","label":"UTC"}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(c.groups) != 2 || c.groups[0].Region != "Europe" || c.groups[1].Region != "Other" {
		t.Errorf("groups = %+v", c.groups)
	}
}
