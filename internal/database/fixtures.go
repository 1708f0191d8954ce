package database

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed fixtures/roster.toml
var rosterTOML string

// Roster is the decoded mock roster fixture.
type Roster struct {
	Teams   []FixtureTeam   `toml:"team"`
	Workers []FixtureWorker `toml:"worker"`
}

type FixtureTeam struct {
	Name string `toml:"name"`
}

// FixtureWorker is one roster entry. Attendance holds one space-separated
// code (P, A, H, L, OFF) per day of the month.
type FixtureWorker struct {
	Name         string          `toml:"name"`
	Phone        string          `toml:"phone"`
	Team         string          `toml:"team"`
	TodayStatus  string          `toml:"today_status"`
	State        string          `toml:"state"`
	LastSeen     string          `toml:"last_seen"`
	LastLocation string          `toml:"last_location"`
	KmsMTD       float64         `toml:"kms_mtd"`
	SalaryMTD    int64           `toml:"salary_mtd"`
	Attendance   string          `toml:"attendance"`
	Visits       []FixtureVisit  `toml:"visit"`
	Orders       []FixtureOrder  `toml:"order"`
	GPS          []FixtureGPSLog `toml:"gps"`
}

type FixtureVisit struct {
	School  string `toml:"school"`
	Samples int    `toml:"samples"`
	Status  string `toml:"status"`
	Date    string `toml:"date"`
}

type FixtureOrder struct {
	School   string `toml:"school"`
	Quantity int    `toml:"quantity"`
	Payment  string `toml:"payment"`
	Status   string `toml:"status"`
	Date     string `toml:"date"`
}

type FixtureGPSLog struct {
	MinutesAgo int     `toml:"minutes_ago"`
	Location   string  `toml:"location"`
	Kms        float64 `toml:"kms"`
	Source     string  `toml:"source"`
}

// LoadRoster decodes the embedded roster fixture.
func LoadRoster() (Roster, error) {
	return ParseRoster(rosterTOML)
}

// ParseRoster decodes a roster document and checks that every worker's team
// is declared.
func ParseRoster(doc string) (Roster, error) {
	var r Roster
	md, err := toml.Decode(doc, &r)
	if err != nil {
		return Roster{}, fmt.Errorf("decode roster: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Roster{}, fmt.Errorf("decode roster: unknown keys %s", strings.Join(keys, ", "))
	}
	teams := make(map[string]bool, len(r.Teams))
	for _, t := range r.Teams {
		teams[t.Name] = true
	}
	for _, w := range r.Workers {
		if !teams[w.Team] {
			return Roster{}, fmt.Errorf("decode roster: worker %q references unknown team %q", w.Name, w.Team)
		}
	}
	return r, nil
}
