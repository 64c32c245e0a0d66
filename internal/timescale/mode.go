// Package timescale maps calendar time onto the chart's horizontal pixel axis.
package timescale

import (
	"fmt"
	"strings"
)

// ViewMode is one of the five time granularities the chart can display.
type ViewMode string

const (
	QuarterDay ViewMode = "Quarter Day"
	HalfDay    ViewMode = "Half Day"
	Day        ViewMode = "Day"
	Week       ViewMode = "Week"
	Month      ViewMode = "Month"
)

// modeSpec holds the fixed parameters of a view mode.
type modeSpec struct {
	stepHours   float64 // Hours covered by one column
	minColumn   float64 // Minimum column width in pixels
	paddingDays int     // Days added before and after the task range (unused for Month)
}

var catalogue = map[ViewMode]modeSpec{
	QuarterDay: {stepHours: 6, minColumn: 38, paddingDays: 7},
	HalfDay:    {stepHours: 12, minColumn: 38, paddingDays: 7},
	Day:        {stepHours: 24, minColumn: 18, paddingDays: 3},
	Week:       {stepHours: 168, minColumn: 140, paddingDays: 3},
	Month:      {stepHours: 720, minColumn: 20},
}

// Modes returns every view mode from finest to coarsest.
func Modes() []ViewMode {
	return []ViewMode{QuarterDay, HalfDay, Day, Week, Month}
}

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	_, ok := catalogue[m]
	return ok
}

// StepHours returns the hours covered by one column in this mode.
func (m ViewMode) StepHours() float64 {
	return catalogue[m].stepHours
}

// MinColumnWidth returns the narrowest column allowed in this mode.
func (m ViewMode) MinColumnWidth() float64 {
	return catalogue[m].minColumn
}

// Next returns the next coarser mode, wrapping to the finest.
func (m ViewMode) Next() ViewMode {
	modes := Modes()
	for i, mode := range modes {
		if mode == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return Day
}

// Prev returns the next finer mode, wrapping to the coarsest.
func (m ViewMode) Prev() ViewMode {
	modes := Modes()
	for i, mode := range modes {
		if mode == m {
			return modes[(i+len(modes)-1)%len(modes)]
		}
	}
	return Day
}

// ParseViewMode accepts "Quarter Day", "quarter_day", "quarterday", "QUARTER-DAY" and so on.
func ParseViewMode(s string) (ViewMode, error) {
	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)

	for _, mode := range Modes() {
		if strings.ToLower(strings.ReplaceAll(string(mode), " ", "")) == key {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}
