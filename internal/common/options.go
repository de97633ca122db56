package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Location is an insurable location offered to policy buyers.
type Location struct {
	Id   string `yaml:"id"`
	Name string `yaml:"name"`
}

// EventTypeOption is a weather event type offered to policy buyers.
type EventTypeOption struct {
	Id   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DurationOption is a coverage duration offered to policy buyers.
type DurationOption struct {
	Days int    `yaml:"days"`
	Name string `yaml:"name"`
}

// Options holds the static enumerations the policy form is built from.
// Pure config: the core validates against it but never mutates it.
type Options struct {
	Locations  []Location        `yaml:"locations"`
	EventTypes []EventTypeOption `yaml:"eventTypes"`
	Durations  []DurationOption  `yaml:"durations"`
}

// DefaultOptions returns the built-in enumerations.
func DefaultOptions() *Options {
	return &Options{
		Locations: []Location{
			{Id: "new-york", Name: "New York, USA"},
			{Id: "london", Name: "London, UK"},
			{Id: "tokyo", Name: "Tokyo, Japan"},
			{Id: "sydney", Name: "Sydney, Australia"},
			{Id: "mumbai", Name: "Mumbai, India"},
		},
		EventTypes: []EventTypeOption{
			{Id: "rainfall", Name: "Excessive Rainfall"},
			{Id: "drought", Name: "Drought"},
			{Id: "heatwave", Name: "Heatwave"},
			{Id: "storm", Name: "Storm"},
		},
		Durations: []DurationOption{
			{Days: 30, Name: "30 Days"},
			{Days: 60, Name: "60 Days"},
			{Days: 90, Name: "90 Days"},
			{Days: 180, Name: "180 Days"},
			{Days: 365, Name: "365 Days"},
		},
	}
}

// LoadOptions reads the enumerations from a YAML file, falling back to the
// built-in defaults when no file is configured.
func LoadOptions(optionsFile string) (*Options, error) {
	if optionsFile == "" {
		return DefaultOptions(), nil
	}

	var optionsPath string
	if filepath.IsAbs(optionsFile) {
		optionsPath = optionsFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		optionsPath = filepath.Join(wd, optionsFile)
	}

	data, err := os.ReadFile(optionsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", optionsFile, err)
	}

	var options Options
	if err := yaml.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", optionsFile, err)
	}

	for i, location := range options.Locations {
		if location.Id == "" {
			return nil, fmt.Errorf("location at index %d missing id", i)
		}
	}
	for i, eventType := range options.EventTypes {
		if eventType.Id == "" {
			return nil, fmt.Errorf("event type at index %d missing id", i)
		}
	}
	for i, duration := range options.Durations {
		if duration.Days <= 0 {
			return nil, fmt.Errorf("duration at index %d must be positive", i)
		}
	}

	return &options, nil
}

func (o *Options) HasLocation(id string) bool {
	for _, location := range o.Locations {
		if location.Id == id {
			return true
		}
	}
	return false
}

func (o *Options) HasEventType(id string) bool {
	for _, eventType := range o.EventTypes {
		if eventType.Id == id {
			return true
		}
	}
	return false
}

func (o *Options) HasDuration(days int) bool {
	for _, duration := range o.Durations {
		if duration.Days == days {
			return true
		}
	}
	return false
}
