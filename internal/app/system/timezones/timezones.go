// Package timezones serves the curated zone list behind the audit log's
// display-zone selector.
package timezones

import (
	"cmp"
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"
	_ "time/tzdata"
)

//go:embed timezonedata/timezones.json
var FS embed.FS

const dataFile = "timezonedata/timezones.json"

// Zone is one selectable IANA zone.
type Zone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"`
}

// ZoneGroup is the zones of one region, for <optgroup> rendering.
type ZoneGroup struct {
	Region string
	Zones  []Zone
}

// catalog is the parsed data file. It is read-only once built.
type catalog struct {
	zones  []Zone
	byID   map[string]Zone
	groups []ZoneGroup
}

var cat = sync.OnceValues(func() (*catalog, error) {
	data, err := FS.ReadFile(dataFile)
	if err != nil {
		return nil, err
	}
	return parse(data)
})

func parse(data []byte) (*catalog, error) {
	var list []Zone
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", dataFile, err)
	}
	c := &catalog{zones: list, byID: make(map[string]Zone, len(list))}

	byRegion := map[string][]Zone{}
	for _, z := range list {
		if z.ID == "" {
			return nil, fmt.Errorf("parse %s: zone without id", dataFile)
		}
		if _, err := time.LoadLocation(z.ID); err != nil {
			return nil, fmt.Errorf("parse %s: %w", dataFile, err)
		}
		c.byID[z.ID] = z
		region := cmp.Or(z.Region, "Other")
		byRegion[region] = append(byRegion[region], z)
	}
	for region, zs := range byRegion {
		slices.SortStableFunc(zs, func(a, b Zone) int { return cmp.Compare(a.Label, b.Label) })
		c.groups = append(c.groups, ZoneGroup{Region: region, Zones: zs})
	}
	slices.SortFunc(c.groups, func(a, b ZoneGroup) int { return cmp.Compare(a.Region, b.Region) })
	return c, nil
}

// Load parses the embedded list. Startup calls it to fail fast; every other
// function loads lazily.
func Load() error {
	_, err := cat()
	return err
}

// All returns the curated zones in file order.
func All() ([]Zone, error) {
	c, err := cat()
	if err != nil {
		return nil, err
	}
	return c.zones, nil
}

// Groups returns the zones grouped by region, regions and zones sorted by
// name.
func Groups() ([]ZoneGroup, error) {
	c, err := cat()
	if err != nil {
		return nil, err
	}
	return c.groups, nil
}

func lookup(id string) (Zone, bool) {
	c, err := cat()
	if err != nil {
		return Zone{}, false
	}
	z, ok := c.byID[id]
	return z, ok
}

// Label returns the display label for id, or id itself when unknown.
func Label(id string) string {
	if z, ok := lookup(id); ok && z.Label != "" {
		return z.Label
	}
	return id
}

// Valid reports whether id is in the curated list.
func Valid(id string) bool {
	_, ok := lookup(id)
	return ok
}

// Location resolves id to a *time.Location. Unknown or uncurated IDs
// resolve to UTC.
func Location(id string) *time.Location {
	if !Valid(id) {
		return time.UTC
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return time.UTC
	}
	return loc
}
