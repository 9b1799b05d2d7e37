package calendar

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileCalendar is the YAML shape of a local holiday fixture:
//
//	jurisdictions:
//	  england-and-wales:
//	    - "2023-12-25"
//	    - "2023-12-26"
type fileCalendar struct {
	Jurisdictions map[string][]string `yaml:"jurisdictions"`
}

// FileSource serves holidays from a local YAML file. It exists for
// environments without reach to the reference-data service (development,
// offline testing) and for operational fallback fixtures.
type FileSource struct {
	holidays map[string]HolidaySet
}

// NewFileSource loads and parses the YAML holiday file at path.
func NewFileSource(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("reading holiday file %q: %w", path, err)
	}

	var parsed fileCalendar
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing holiday file %q: %w", path, err)
	}

	holidays := make(map[string]HolidaySet, len(parsed.Jurisdictions))
	for jurisdiction, dates := range parsed.Jurisdictions {
		set := make(HolidaySet, len(dates))
		for _, s := range dates {
			d, err := ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("holiday file %q, jurisdiction %q: %w", path, jurisdiction, err)
			}
			set.Add(d)
		}
		holidays[jurisdiction] = set
	}
	return &FileSource{holidays: holidays}, nil
}

// Holidays returns the configured holidays for jurisdiction that fall
// within [from, to]. An unknown jurisdiction is an error: a silently empty
// calendar would make every day a business day.
func (s *FileSource) Holidays(_ context.Context, jurisdiction string, from, to Date) (HolidaySet, error) {
	all, ok := s.holidays[jurisdiction]
	if !ok {
		return nil, fmt.Errorf("no holiday data for jurisdiction %q", jurisdiction)
	}

	set := make(HolidaySet)
	for d := range all {
		if !d.Before(from) && !d.After(to) {
			set.Add(d)
		}
	}
	return set, nil
}
