package utils

import (
	"errors"
	"time"
)

var clinicalTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseClinicalTime accepts the date and datetime forms the backend emits.
func ParseClinicalTime(value string) (time.Time, error) {
	for _, layout := range clinicalTimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}
