// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package preferences defines the user settings that control how temperatures are displayed.
package preferences

import "strings"

const (
	KeyTemperatureType  = "temperature_type"
	KeyTemperatureUnits = "temperature_units"

	DefaultTemperatureType  = string(MeasuredOnly)
	DefaultTemperatureUnits = "celsius"

	fahrenheitMarker = "fahrenheit"
)

// Store is a read-only key/value source of user preferences. GetString returns def when key
// has no value.
type Store interface {
	GetString(key, def string) string
}

// TemperatureType selects which of the measured and apparent temperatures are displayed.
type TemperatureType string

const (
	MeasuredOnly                        TemperatureType = "measured_only"
	AppearanceOnly                      TemperatureType = "appearance_only"
	MeasuredAppearancePrimaryMeasured   TemperatureType = "measured_appearance_primary_measured"
	MeasuredAppearancePrimaryAppearance TemperatureType = "measured_appearance_primary_appearance"
)

// TemperatureTypes lists all recognized temperature types.
var TemperatureTypes = []TemperatureType{
	MeasuredOnly,
	AppearanceOnly,
	MeasuredAppearancePrimaryMeasured,
	MeasuredAppearancePrimaryAppearance,
}

// ParseTemperatureType returns the TemperatureType for val and whether val is recognized.
// Unrecognized values map to MeasuredOnly.
func ParseTemperatureType(val string) (TemperatureType, bool) {
	for _, tt := range TemperatureTypes {
		if string(tt) == val {
			return tt, true
		}
	}
	return MeasuredOnly, false
}

// Snapshot is the pair of preferences read for a single formatting call.
type Snapshot struct {
	Type  TemperatureType
	Units string

	// RawType holds the stored type value, even if it was not recognized.
	RawType string
	Known   bool
}

// Load reads the temperature type and units from store. The two values are read
// independently; a concurrent change in between may yield a mixed pair.
func Load(store Store) Snapshot {
	raw := store.GetString(KeyTemperatureType, DefaultTemperatureType)
	tt, ok := ParseTemperatureType(raw)
	return Snapshot{
		Type:    tt,
		Units:   store.GetString(KeyTemperatureUnits, DefaultTemperatureUnits),
		RawType: raw,
		Known:   ok,
	}
}

// Fahrenheit reports whether the units preference selects Fahrenheit. Any value containing
// "fahrenheit" matches.
func (s Snapshot) Fahrenheit() bool {
	return strings.Contains(s.Units, fahrenheitMarker)
}

// SwapPrimary returns the type that shows the other temperature as the primary value.
// Unrecognized values are returned unchanged.
func SwapPrimary(val string) string {
	switch TemperatureType(val) {
	case MeasuredOnly:
		return string(AppearanceOnly)
	case AppearanceOnly:
		return string(MeasuredOnly)
	case MeasuredAppearancePrimaryMeasured:
		return string(MeasuredAppearancePrimaryAppearance)
	case MeasuredAppearancePrimaryAppearance:
		return string(MeasuredAppearancePrimaryMeasured)
	default:
		return val
	}
}
